// Package store persists validated site configurations, their decoded
// assets and blog content to the per-site directory tree, and manages
// reusable configuration templates.
package store

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/forgesite/forgesite/internal/logger"
	"github.com/forgesite/forgesite/internal/site"
	forgeerrors "github.com/forgesite/forgesite/pkg/errors"
	"github.com/forgesite/forgesite/pkg/slug"
)

var dataURIPattern = regexp.MustCompile(`^data:image/(\w+);base64,(.+)$`)

// Store writes site configurations under ConfigsDir and templates under
// TemplatesDir. Both trees are created lazily.
type Store struct {
	ConfigsDir   string
	TemplatesDir string

	log *logger.Logger
}

// New constructs a Store. A nil logger disables logging.
func New(configsDir, templatesDir string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{ConfigsDir: configsDir, TemplatesDir: templatesDir, log: log}
}

// SaveOptions carries the optional payloads accompanying a configuration.
type SaveOptions struct {
	// Images maps asset keys to data-URI strings or slices of data-URI
	// strings. Values that are not data URIs are silently skipped; the
	// wizard forwards whatever the browser gave it.
	Images map[string]any

	BlogArticles []BlogArticle

	SaveAsTemplate      bool
	TemplateName        string
	TemplateDescription string
}

// BlogArticle is one generated blog post to persist as markdown.
type BlogArticle struct {
	Title    string `json:"title"`
	Date     string `json:"date,omitempty"`
	Category string `json:"category,omitempty"`
	Image    string `json:"image,omitempty"`
	Content  string `json:"content"`
}

// SaveResult reports where a configuration and its payloads were written.
type SaveResult struct {
	SiteID       string
	ConfigPath   string
	AssetsDir    string
	BlogDir      string
	TemplatePath string
}

type blogFrontMatter struct {
	Title    string `yaml:"title"`
	Date     string `yaml:"date"`
	Category string `yaml:"category,omitempty"`
	Image    string `yaml:"image,omitempty"`
}

// Save validates cfg and, only if validation passes, writes the directory
// tree, decoded images, blog markdown and the pretty-printed configuration.
// Validation failures abort before any filesystem write.
func (s *Store) Save(cfg *site.SiteConfig, opts SaveOptions) (*SaveResult, error) {
	res := site.Validate(cfg)
	if !res.Valid {
		siteID := ""
		if cfg != nil {
			siteID = cfg.Meta.SiteID
		}
		return nil, forgeerrors.NewValidationError(siteID, res.Errors)
	}

	siteID := cfg.Meta.SiteID
	siteDir := filepath.Join(s.ConfigsDir, siteID)
	assetsDir := filepath.Join(siteDir, "assets")
	blogDir := filepath.Join(siteDir, "content", "blog")

	for _, dir := range []string{siteDir, assetsDir, blogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create site directory: %w", err)
		}
	}

	if err := s.writeImages(assetsDir, siteID, opts.Images); err != nil {
		return nil, err
	}

	if err := s.writeBlogArticles(blogDir, opts.BlogArticles); err != nil {
		return nil, err
	}

	configPath := filepath.Join(siteDir, "site-config.json")
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode configuration: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write configuration: %w", err)
	}

	result := &SaveResult{
		SiteID:     siteID,
		ConfigPath: configPath,
		AssetsDir:  assetsDir,
		BlogDir:    blogDir,
	}

	if opts.SaveAsTemplate {
		path, err := s.SaveTemplate(cfg, opts.TemplateName, opts.TemplateDescription)
		if err != nil {
			return nil, err
		}
		result.TemplatePath = path
	}

	s.log.WithFields(map[string]any{"site": siteID, "path": configPath}).Info("configuration saved")
	return result, nil
}

func (s *Store) writeImages(assetsDir, siteID string, images map[string]any) error {
	for key, value := range images {
		switch v := value.(type) {
		case string:
			if err := s.writeDataURI(assetsDir, fmt.Sprintf("%s-%s", siteID, key), v); err != nil {
				return err
			}
		case []string:
			for i, uri := range v {
				if err := s.writeDataURI(assetsDir, fmt.Sprintf("%s-%s-%d", siteID, key, i+1), uri); err != nil {
					return err
				}
			}
		case []any:
			index := 0
			for _, item := range v {
				uri, ok := item.(string)
				if !ok {
					continue
				}
				index++
				if err := s.writeDataURI(assetsDir, fmt.Sprintf("%s-%s-%d", siteID, key, index), uri); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// writeDataURI decodes a single data URI. Values that do not match the
// expected pattern are skipped without logging a failure; that leniency is
// deliberate.
func (s *Store) writeDataURI(assetsDir, baseName, uri string) error {
	matches := dataURIPattern.FindStringSubmatch(uri)
	if matches == nil {
		return nil
	}

	ext := matches[1]
	payload, err := base64.StdEncoding.DecodeString(matches[2])
	if err != nil {
		s.log.WithFields(map[string]any{"asset": baseName}).Warn("data URI payload is not valid base64, skipping")
		return nil
	}

	path := filepath.Join(assetsDir, fmt.Sprintf("%s.%s", baseName, ext))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write asset %s: %w", baseName, err)
	}
	return nil
}

func (s *Store) writeBlogArticles(blogDir string, articles []BlogArticle) error {
	for _, article := range articles {
		if article.Title == "" {
			continue
		}

		fm := blogFrontMatter{
			Title:    article.Title,
			Date:     article.Date,
			Category: article.Category,
			Image:    article.Image,
		}
		if fm.Date == "" {
			fm.Date = time.Now().Format("2006-01-02")
		}

		header, err := yaml.Marshal(fm)
		if err != nil {
			return fmt.Errorf("encode front matter for %q: %w", article.Title, err)
		}

		body := fmt.Sprintf("---\n%s---\n\n# %s\n\n%s\n", header, article.Title, article.Content)
		path := filepath.Join(blogDir, slug.Make(article.Title)+".md")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return fmt.Errorf("write article %q: %w", article.Title, err)
		}
	}
	return nil
}

// SaveTemplate snapshots a configuration as a reusable template: site
// identifying fields are stripped and a _template metadata block attached.
func (s *Store) SaveTemplate(cfg *site.SiteConfig, name, description string) (string, error) {
	if name == "" {
		name = fmt.Sprintf("%s-template", cfg.BusinessType)
	}

	clone, err := cloneConfig(cfg)
	if err != nil {
		return "", err
	}

	clone.Meta.SiteID = ""
	clone.Meta.Domain = ""
	clone.Contact.Email = ""
	clone.Contact.Phone = ""
	clone.Template = &site.TemplateMeta{
		Name:         name,
		BusinessType: clone.BusinessType,
		Created:      time.Now().UTC().Format(time.RFC3339),
		Description:  description,
	}

	if err := os.MkdirAll(s.TemplatesDir, 0o755); err != nil {
		return "", fmt.Errorf("create templates directory: %w", err)
	}

	data, err := json.MarshalIndent(clone, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode template: %w", err)
	}

	path := filepath.Join(s.TemplatesDir, slug.Make(name)+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write template: %w", err)
	}

	s.log.WithFields(map[string]any{"template": name, "path": path}).Info("template saved")
	return path, nil
}

// LoadTemplate reads a template by name and strips its metadata block so
// the result can seed a new site.
func (s *Store) LoadTemplate(name string) (*site.SiteConfig, error) {
	path := filepath.Join(s.TemplatesDir, slug.Make(name)+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, forgeerrors.NewTemplateNotFoundError(name)
		}
		return nil, fmt.Errorf("read template: %w", err)
	}

	var cfg site.SiteConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode template %s: %w", name, err)
	}

	cfg.Template = nil
	return &cfg, nil
}

// TemplateInfo summarizes one stored template.
type TemplateInfo struct {
	Name         string
	BusinessType string
	Created      string
	Description  string
}

// ListTemplates enumerates the stored templates. A missing templates
// directory yields an empty list, not an error.
func (s *Store) ListTemplates() ([]TemplateInfo, error) {
	entries, err := os.ReadDir(s.TemplatesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read templates directory: %w", err)
	}

	var infos []TemplateInfo
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.TemplatesDir, entry.Name()))
		if err != nil {
			continue
		}

		var cfg site.SiteConfig
		if err := json.Unmarshal(data, &cfg); err != nil || cfg.Template == nil {
			continue
		}

		infos = append(infos, TemplateInfo{
			Name:         cfg.Template.Name,
			BusinessType: cfg.Template.BusinessType,
			Created:      cfg.Template.Created,
			Description:  cfg.Template.Description,
		})
	}
	return infos, nil
}

func cloneConfig(cfg *site.SiteConfig) (*site.SiteConfig, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("clone configuration: %w", err)
	}
	var clone site.SiteConfig
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, fmt.Errorf("clone configuration: %w", err)
	}
	return &clone, nil
}
