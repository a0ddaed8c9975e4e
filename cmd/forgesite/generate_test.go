package main

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeWizardFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wizard.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func useTempDirs(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("FORGESITE_CONFIGS_DIR", filepath.Join(root, "configs"))
	t.Setenv("FORGESITE_TEMPLATES_DIR", filepath.Join(root, "templates"))
	return root
}

const validWizard = `{
	"siteName": "Plomberie Dupont",
	"businessType": "plumbing",
	"contact": {"email": "contact@dupont.fr", "phone": "+33 1 23 45 67 89"}
}`

func TestGenerateWritesSiteConfig(t *testing.T) {
	root := useTempDirs(t)
	input := writeWizardFile(t, validWizard)

	out, err := execute(t, "generate", "--input", input)
	require.NoError(t, err)
	require.Contains(t, out, "plomberie-dupont")
	require.FileExists(t, filepath.Join(root, "configs", "plomberie-dupont", "site-config.json"))
}

func TestGenerateDryRunWritesNothing(t *testing.T) {
	root := useTempDirs(t)
	input := writeWizardFile(t, validWizard)

	out, err := execute(t, "generate", "--input", input, "--dry-run")
	require.NoError(t, err)
	require.Contains(t, out, "valid")
	require.NoDirExists(t, filepath.Join(root, "configs"))
}

func TestGenerateReportsAllValidationErrors(t *testing.T) {
	useTempDirs(t)
	input := writeWizardFile(t, `{
		"siteName": "Broken",
		"businessType": "plumbing",
		"colors": {"primary": "not-a-color"},
		"contact": {}
	}`)

	out, err := execute(t, "generate", "--input", input)
	require.Error(t, err)
	require.Contains(t, out, "invalid")
	require.Contains(t, out, "email")
	require.Contains(t, out, "primary")
}

func TestGenerateWritesAssetPayload(t *testing.T) {
	root := useTempDirs(t)
	input := writeWizardFile(t, validWizard)

	logo := base64.StdEncoding.EncodeToString([]byte("logo-bytes"))
	assets := filepath.Join(t.TempDir(), "assets.json")
	require.NoError(t, os.WriteFile(assets, []byte(`{
		"images": {"logo": "data:image/png;base64,`+logo+`"},
		"blogArticles": [{"title": "Entretien annuel", "content": "Pensez au detartrage."}]
	}`), 0o644))

	_, err := execute(t, "generate", "--input", input, "--assets", assets, "--process-images=false")
	require.NoError(t, err)

	siteDir := filepath.Join(root, "configs", "plomberie-dupont")
	require.FileExists(t, filepath.Join(siteDir, "assets", "plomberie-dupont-logo.png"))
	require.FileExists(t, filepath.Join(siteDir, "content", "blog", "entretien-annuel.md"))
}

func TestGenerateRequiresInputFlag(t *testing.T) {
	useTempDirs(t)
	_, err := execute(t, "generate")
	require.Error(t, err)
}

func TestValidateCommandAcceptsGoodInput(t *testing.T) {
	useTempDirs(t)
	input := writeWizardFile(t, validWizard)

	out, err := execute(t, "validate", "--input", input)
	require.NoError(t, err)
	require.Contains(t, out, "valid")
}

func TestTemplateSaveLoadListRoundTrip(t *testing.T) {
	root := useTempDirs(t)
	input := writeWizardFile(t, validWizard)

	_, err := execute(t, "generate", "--input", input)
	require.NoError(t, err)

	out, err := execute(t, "template", "save", "--site", "plomberie-dupont", "--name", "Plombier Standard")
	require.NoError(t, err)
	require.Contains(t, out, "template saved")
	require.FileExists(t, filepath.Join(root, "templates", "plombier-standard.json"))

	out, err = execute(t, "template", "list")
	require.NoError(t, err)
	require.Contains(t, out, "Plombier Standard")

	out, err = execute(t, "template", "load", "Plombier Standard")
	require.NoError(t, err)
	require.Contains(t, out, `"businessType": "plumbing"`)

	_, err = execute(t, "template", "load", "missing")
	require.Error(t, err)
}

func TestProcessImagesCommandMissingSiteAssets(t *testing.T) {
	useTempDirs(t)
	_, err := execute(t, "process-images", "--site", "ghost")
	require.Error(t, err, "a site without an assets directory is reported")
}
