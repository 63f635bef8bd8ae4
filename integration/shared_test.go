//go:build basic || database

// Package integration runs the sdphc binary end to end.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// Database backends need Docker: go test -tags database ./integration
package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedBinaryPath holds the path to a shared sdphc binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// surveyCSV holds one source point, one suspected source and three clean points.
const surveyCSV = `PointID,X,Y,Radon,VOCs,CO2,O2,CH4
P1,10,10,10,50000,200000,0.2,0
P2,80,20,200,5000,60000,0.5,0
P3,50,50,2000,50,20000,0.5,0
P4,20,80,2000,10,5000,0.5,0
P5,90,90,1000,20,8000,0.3,0.00005
`

const boundaryGeoJSON = `{"type": "FeatureCollection", "features": [
  {"type": "Feature", "properties": {},
   "geometry": {"type": "Polygon", "coordinates": [[[0,0],[100,0],[100,100],[0,100],[0,0]]]}}
]}`

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getBinary returns the path to the sdphc binary, building it once if needed.
func getBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "sdphc-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binPath := filepath.Join(tempDir, "sdphc")
		buildCmd := exec.Command("go", "build", "-o", binPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build sdphc: %v", err))
		}

		sharedBinaryPath = binPath
	})

	return sharedBinaryPath
}

// writeFixtures writes the survey and boundary into a fresh directory.
func writeFixtures(t *testing.T) (dir, points, boundary string) {
	t.Helper()
	dir = t.TempDir()
	points = filepath.Join(dir, "survey.csv")
	boundary = filepath.Join(dir, "boundary.geojson")
	require.NoError(t, os.WriteFile(points, []byte(surveyCSV), 0o644))
	require.NoError(t, os.WriteFile(boundary, []byte(boundaryGeoJSON), 0o644))
	return dir, points, boundary
}

// runSdphc runs the binary in dir with extra environment variables and returns its combined output.
func runSdphc(t *testing.T, dir string, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getBinary(), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOME="+dir)
	cmd.Env = append(cmd.Env, env...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return string(output), err
}
