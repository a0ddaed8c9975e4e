package store

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgesite/forgesite/internal/config"
	"github.com/forgesite/forgesite/internal/site"
	forgeerrors "github.com/forgesite/forgesite/pkg/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	root := t.TempDir()
	return New(filepath.Join(root, "configs"), filepath.Join(root, "templates"), nil)
}

func assembledConfig(t *testing.T) *site.SiteConfig {
	t.Helper()
	return site.Assemble(&config.WizardInput{
		SiteName:     "Test Co",
		BusinessType: "restaurant",
		Contact:      config.Contact{Email: "a@b.com", Phone: "+33 1 23 45 67 89"},
	})
}

func pngDataURI(payload string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(payload))
}

func TestSaveWritesConfigTree(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	res, err := s.Save(assembledConfig(t), SaveOptions{})
	require.NoError(t, err)

	require.Equal(t, "test-co", res.SiteID)
	require.FileExists(t, res.ConfigPath)
	require.DirExists(t, res.AssetsDir)
	require.DirExists(t, res.BlogDir)

	data, err := os.ReadFile(res.ConfigPath)
	require.NoError(t, err)

	var loaded site.SiteConfig
	require.NoError(t, json.Unmarshal(data, &loaded))
	require.Equal(t, "Test Co", loaded.Brand.Name)
	require.True(t, strings.HasPrefix(string(data), "{\n  "), "configuration should be pretty-printed")
}

func TestSaveIsIdempotentOnDirectories(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.Save(assembledConfig(t), SaveOptions{})
	require.NoError(t, err)
	_, err = s.Save(assembledConfig(t), SaveOptions{})
	require.NoError(t, err)
}

func TestSaveRejectsInvalidConfigBeforeAnyWrite(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	cfg := assembledConfig(t)
	cfg.Contact.Email = ""

	_, err := s.Save(cfg, SaveOptions{
		Images: map[string]any{"logo": pngDataURI("img")},
	})
	require.Error(t, err)

	var verr *forgeerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr.Issues)

	_, statErr := os.Stat(s.ConfigsDir)
	require.True(t, os.IsNotExist(statErr), "no file should exist after a rejected save")
}

func TestSaveDecodesDataURIImages(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	res, err := s.Save(assembledConfig(t), SaveOptions{
		Images: map[string]any{
			"logo":    pngDataURI("logo-bytes"),
			"gallery": []string{pngDataURI("one"), pngDataURI("two")},
			"ignored": "https://example.com/not-a-data-uri.png",
		},
	})
	require.NoError(t, err)

	logo, err := os.ReadFile(filepath.Join(res.AssetsDir, "test-co-logo.png"))
	require.NoError(t, err)
	require.Equal(t, "logo-bytes", string(logo))

	require.FileExists(t, filepath.Join(res.AssetsDir, "test-co-gallery-1.png"))
	require.FileExists(t, filepath.Join(res.AssetsDir, "test-co-gallery-2.png"))

	entries, err := os.ReadDir(res.AssetsDir)
	require.NoError(t, err)
	require.Len(t, entries, 3, "non data-URI values are silently skipped")
}

func TestSaveWritesBlogArticles(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	res, err := s.Save(assembledConfig(t), SaveOptions{
		BlogArticles: []BlogArticle{
			{Title: "Nos Spécialités d'Été", Category: "cuisine", Content: "Le marché du jour."},
			{Content: "no title, skipped"},
		},
	})
	require.NoError(t, err)

	path := filepath.Join(res.BlogDir, "nos-sp-cialit-s-d-t.md")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	require.True(t, strings.HasPrefix(text, "---\n"))
	require.Contains(t, text, "title: Nos Spécialités d'Été")
	require.Contains(t, text, "category: cuisine")
	require.Contains(t, text, "date: ")
	require.Contains(t, text, "# Nos Spécialités d'Été")
	require.Contains(t, text, "Le marché du jour.")

	entries, err := os.ReadDir(res.BlogDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "articles without a title are skipped")
}

func TestSaveAsTemplateStripsSiteFields(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	res, err := s.Save(assembledConfig(t), SaveOptions{
		SaveAsTemplate:      true,
		TemplateName:        "Resto Classique",
		TemplateDescription: "Base restaurant",
	})
	require.NoError(t, err)
	require.FileExists(t, res.TemplatePath)

	data, err := os.ReadFile(res.TemplatePath)
	require.NoError(t, err)

	var tpl site.SiteConfig
	require.NoError(t, json.Unmarshal(data, &tpl))
	require.Empty(t, tpl.Meta.SiteID)
	require.Empty(t, tpl.Meta.Domain)
	require.Empty(t, tpl.Contact.Email)
	require.Empty(t, tpl.Contact.Phone)
	require.NotNil(t, tpl.Template)
	require.Equal(t, "Resto Classique", tpl.Template.Name)
	require.Equal(t, "restaurant", tpl.Template.BusinessType)
	require.NotEmpty(t, tpl.Template.Created)

	// The original configuration on disk keeps its identifying fields.
	original, err := os.ReadFile(res.ConfigPath)
	require.NoError(t, err)
	var kept site.SiteConfig
	require.NoError(t, json.Unmarshal(original, &kept))
	require.Equal(t, "test-co", kept.Meta.SiteID)
	require.Equal(t, "a@b.com", kept.Contact.Email)
}

func TestLoadTemplateRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.Save(assembledConfig(t), SaveOptions{
		SaveAsTemplate: true,
		TemplateName:   "Resto Classique",
	})
	require.NoError(t, err)

	tpl, err := s.LoadTemplate("Resto Classique")
	require.NoError(t, err)
	require.Nil(t, tpl.Template, "template metadata is stripped on load")
	require.Equal(t, "restaurant", tpl.BusinessType)
	require.Empty(t, tpl.Meta.SiteID)
}

func TestLoadTemplateNotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.LoadTemplate("missing")
	var nf *forgeerrors.TemplateNotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "missing", nf.Name)
}

func TestListTemplates(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	infos, err := s.ListTemplates()
	require.NoError(t, err)
	require.Empty(t, infos)

	_, err = s.Save(assembledConfig(t), SaveOptions{SaveAsTemplate: true, TemplateName: "Un"})
	require.NoError(t, err)
	cfg := assembledConfig(t)
	cfg.Meta.SiteID = "other-site"
	_, err = s.Save(cfg, SaveOptions{SaveAsTemplate: true, TemplateName: "Deux"})
	require.NoError(t, err)

	infos, err = s.ListTemplates()
	require.NoError(t, err)
	require.Len(t, infos, 2)
}
