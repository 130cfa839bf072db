package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matchload/internal/testutil"
)

// Golden tests pin the rendered report format. Regenerate with:
//
//	go test ./internal/ingest -update

func assertReportGolden(t *testing.T, name string, rendered string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(rendered))
}

func TestReport_Golden_AllSucceeded(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteStagingFile(t, dir, "comp_a_matches.csv", feedA, baseTime.Add(-time.Hour))
	testutil.WriteStagingFile(t, dir, "comp_b_matches.csv", feedB, baseTime.Add(-2*time.Hour))

	in, _, _ := newTestIngestor(t, dir)
	report, err := in.Run(context.Background())
	require.NoError(t, err)

	assertReportGolden(t, "report_success", report.Render())
}

func TestReport_Golden_MixedOutcomes(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteStagingFile(t, dir, "comp_a_matches.csv", feedA, baseTime.Add(-time.Hour))
	testutil.WriteStagingFile(t, dir, "garbage_matches.csv", "this is not a match feed\nmore junk\n", baseTime.Add(-90*time.Minute))
	testutil.WriteStagingFile(t, dir, "comp_b_matches.csv", feedB, baseTime.Add(-2*time.Hour))

	in, _, _ := newTestIngestor(t, dir)
	report, err := in.Run(context.Background())
	require.NoError(t, err)

	assertReportGolden(t, "report_mixed", report.Render())
}

func TestReport_Golden_NothingStaged(t *testing.T) {
	in, _, _ := newTestIngestor(t, t.TempDir())
	report, err := in.Run(context.Background())
	require.NoError(t, err)

	assertReportGolden(t, "report_empty", report.Render())
}
