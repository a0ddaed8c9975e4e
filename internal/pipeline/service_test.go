package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgesite/forgesite/internal/config"
	"github.com/forgesite/forgesite/internal/imaging"
	"github.com/forgesite/forgesite/internal/store"
	forgeerrors "github.com/forgesite/forgesite/pkg/errors"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	root := t.TempDir()
	st := store.New(filepath.Join(root, "configs"), filepath.Join(root, "templates"), nil)
	proc := imaging.NewProcessor(imaging.NewGoRaster(), nil, imaging.ProcessorOptions{})
	return NewService(st, proc, nil), st
}

func wizardInput() *config.WizardInput {
	return &config.WizardInput{
		SiteName:     "Plomberie Dupont",
		BusinessType: "plumbing",
		Contact:      config.Contact{Email: "contact@dupont.fr", Phone: "+33 1 23 45 67 89"},
	}
}

func TestRunFullPipeline(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	outcome, err := svc.Run(context.Background(), Request{Input: wizardInput()})
	require.NoError(t, err)

	require.True(t, outcome.Validation.Valid)
	require.NotNil(t, outcome.Save)
	require.Equal(t, "plomberie-dupont", outcome.Save.SiteID)
	require.FileExists(t, outcome.Save.ConfigPath)
}

func TestRunFromInputFile(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	path := filepath.Join(t.TempDir(), "wizard.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"siteName": "Test Co",
		"businessType": "restaurant",
		"contact": {"email": "a@b.com"}
	}`), 0o644))

	outcome, err := svc.Run(context.Background(), Request{InputPath: path})
	require.NoError(t, err)
	require.Equal(t, "test-co", outcome.Config.Meta.SiteID)
}

func TestRunRejectsMissingInput(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.Run(context.Background(), Request{})
	require.Error(t, err)
}

func TestRunStopsOnValidationError(t *testing.T) {
	t.Parallel()

	svc, st := newTestService(t)
	in := wizardInput()
	in.Contact.Email = ""

	outcome, err := svc.Run(context.Background(), Request{Input: in})
	var verr *forgeerrors.ValidationError
	require.ErrorAs(t, err, &verr)

	require.NotNil(t, outcome.Config, "assembly output is reported even on failure")
	require.False(t, outcome.Validation.Valid)
	require.Nil(t, outcome.Save)

	_, statErr := os.Stat(st.ConfigsDir)
	require.True(t, os.IsNotExist(statErr), "nothing is written on validation failure")
}

func TestRunDryRunWritesNothing(t *testing.T) {
	t.Parallel()

	svc, st := newTestService(t)
	outcome, err := svc.Run(context.Background(), Request{Input: wizardInput(), DryRun: true})
	require.NoError(t, err)

	require.True(t, outcome.Validation.Valid)
	require.Nil(t, outcome.Save)
	_, statErr := os.Stat(st.ConfigsDir)
	require.True(t, os.IsNotExist(statErr))
}

func TestRunHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := svc.Run(ctx, Request{Input: wizardInput()})
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, outcome.Validation.Valid, "validation completes before the context gate")
	require.Nil(t, outcome.Save)
}

func TestRunProcessesSavedAssets(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	outcome, err := svc.Run(context.Background(), Request{
		Input:         wizardInput(),
		ProcessImages: true,
	})
	require.NoError(t, err)
	require.Empty(t, outcome.Assets, "no logo assets were uploaded, nothing to process")
	require.DirExists(t, outcome.Save.AssetsDir)
}
