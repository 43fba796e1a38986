package cli

import (
	"io"

	"github.com/law-makers/menulookup/pkg/models"
	"github.com/schollz/progressbar/v3"
)

// pipelineSteps is the length of the longest stage path, the one that ends
// with a description.
const pipelineSteps = 7

// newProgress returns a stage observer drawing a bar on w and a func that
// clears it. When disabled both are no-ops.
func newProgress(w io.Writer, enabled bool) (func(models.Stage), func()) {
	if !enabled {
		return nil, func() {}
	}

	bar := progressbar.NewOptions(pipelineSteps,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(models.StageStart.String()),
		progressbar.OptionSetWidth(20),
		progressbar.OptionClearOnFinish(),
	)

	observe := func(stage models.Stage) {
		if stage == models.StageDone {
			_ = bar.Finish()
			return
		}
		bar.Describe(stage.String())
		_ = bar.Add(1)
	}
	return observe, func() { _ = bar.Clear() }
}
