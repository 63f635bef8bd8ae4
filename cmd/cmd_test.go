package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdphc/sdphc/schema"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setViper(t *testing.T, key string, value any) {
	t.Helper()
	old := viper.Get(key)
	viper.Set(key, value)
	t.Cleanup(func() { viper.Set(key, old) })
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"threshold"},
		{"background"},
		{"pca"},
		{"score"},
		{"indicators"},
		{"columns"},
		{"mcp"},
		{"version"},
		{"analysis", "status"},
		{"analysis", "clear"},
		{"analysis", "export"},
		{"analysis", "migrate"},
	} {
		c, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], c.Name())
	}
}

func TestScoreFlags(t *testing.T) {
	for _, ind := range schema.ScoredIndicators() {
		assert.NotNil(t, scoreCmd.Flags().Lookup(scoreFlagName(ind)), ind)
	}
	assert.Nil(t, scoreCmd.Flags().Lookup("fg"))
}

func TestScoreValues(t *testing.T) {
	newFlags := func() *pflag.FlagSet {
		fs := pflag.NewFlagSet("score", pflag.ContinueOnError)
		for _, ind := range schema.ScoredIndicators() {
			fs.Float64(scoreFlagName(ind), 0, scoreFlagUsage(ind))
		}
		return fs
	}

	t.Run("only changed flags", func(t *testing.T) {
		fs := newFlags()
		require.NoError(t, fs.Parse([]string{"--radon", "12000", "--vocs", "8000", "--o2", "0"}))

		values, err := scoreValues(fs)
		require.NoError(t, err)
		assert.Len(t, values, 3)
		assert.InDelta(t, 12000, *values[schema.Radon], 1e-9)
		assert.InDelta(t, 8000, *values[schema.VOCs], 1e-9)
		assert.InDelta(t, 0, *values[schema.O2], 1e-9)
		assert.NotContains(t, values, schema.CO2)
	})

	t.Run("nothing given", func(t *testing.T) {
		_, err := scoreValues(newFlags())
		assert.Error(t, err)
	})
}

func TestAnalysisBackendConfig(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		conn    string
		want    schema.DatabaseBackend
		wantErr bool
	}{
		{name: "default sqlite", want: schema.SQLiteBackend},
		{name: "none", backend: "none", want: schema.NoneBackend},
		{name: "case insensitive", backend: "SQLite", want: schema.SQLiteBackend},
		{name: "unknown", backend: "oracle", wantErr: true},
		{name: "mysql without dsn", backend: "mysql", wantErr: true},
		{name: "mysql", backend: "mysql", conn: "root:pw@tcp(localhost:3306)/sdphc", want: schema.MySQLBackend},
		{name: "postgresql bad dsn", backend: "postgresql", conn: "user=x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setViper(t, "analysis-backend", tt.backend)
			setViper(t, "analysis-db-connect", tt.conn)

			backend, conn, err := analysisBackendConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, backend)
			assert.Equal(t, tt.conn, conn)
		})
	}
}

func TestSharedSetup(t *testing.T) {
	dir := t.TempDir()
	points := filepath.Join(dir, "survey.csv")
	require.NoError(t, os.WriteFile(points, []byte("PointID,X,Y,Rn\nP1,0,0,1000\n"), 0o644))

	setViper(t, "analysis-backend", "none")
	setViper(t, "field", []string{"radon=Rn"})
	setViper(t, "output", "json")
	setViper(t, "precision", 3)

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, sharedSetup(rootCtx, nil, []string{points}))
		assert.Equal(t, points, cfg.PointsPath)
		assert.Equal(t, "Rn", cfg.Fields[schema.Radon])
		assert.Equal(t, schema.JSONOut, cfg.Output)
		assert.Equal(t, 3, cfg.Precision)
		assert.Equal(t, schema.NoneBackend, cfg.AnalysisBackend)
	})

	t.Run("missing dataset", func(t *testing.T) {
		err := sharedSetup(rootCtx, nil, []string{filepath.Join(dir, "nope.csv")})
		assert.Error(t, err)
	})

	t.Run("bad precision", func(t *testing.T) {
		setViper(t, "precision", 9)
		err := sharedSetup(rootCtx, nil, []string{points})
		assert.Error(t, err)
	})
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, out.String(), "SDPHC CLI")
	assert.Contains(t, out.String(), "Version: dev")
}

func TestInterpFlagUsage(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("interp")
	require.NotNil(t, flag)
	assert.Equal(t, "idw", flag.DefValue)
	assert.Contains(t, flag.Usage, "kriging")
	assert.Contains(t, flag.Usage, "slow beyond a few hundred points")
}
