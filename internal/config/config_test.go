package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shopify/js-uploader/internal/uploader"
)

const sampleConfig = `s3:
  bucket: assets
  region: us-east-1
destination: testbucket
version: 0.1.1
dir: test/testDir
purge:
  headers:
    Fastly-Key: secret
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func deployFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("deploy", pflag.ContinueOnError)
	fs.String("bucket", "", "")
	fs.String("destination", "", "")
	fs.String("version", "", "")
	fs.Bool("no-latest", false, "")
	fs.StringSlice("file", nil, "")
	fs.String("dir", "", "")
	return fs
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load(nil, writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "assets", cfg.S3.Bucket)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Equal(t, "testbucket", cfg.Destination)
	assert.Equal(t, "0.1.1", cfg.Version)
	assert.True(t, cfg.Latest)
	assert.Equal(t, "test/testDir", cfg.Dir)
	assert.Equal(t, "secret", cfg.Purge.Headers["fastly-key"])
	require.NoError(t, cfg.ValidateDeploy())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(nil, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.True(t, cfg.Latest)
	assert.Empty(t, cfg.Files)
	assert.Error(t, cfg.ValidateSource())
}

func TestLoad_NumericVersion(t *testing.T) {
	for _, content := range []string{"version: 1.10\n", "version: 2\n"} {
		_, err := Load(nil, writeConfig(t, content))
		assert.ErrorContains(t, err, "version must be a quoted string")
	}

	cfg, err := Load(nil, writeConfig(t, "version: \"1.10\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "1.10", cfg.Version)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("JS_UPLOADER_S3_BUCKET", "from-env")
	t.Setenv("JS_UPLOADER_VERSION", "2.0.0")

	cfg, err := Load(nil, writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.S3.Bucket)
	assert.Equal(t, "2.0.0", cfg.Version)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("JS_UPLOADER_DESTINATION", "env-dest")

	fs := deployFlags()
	require.NoError(t, fs.Parse([]string{
		"--destination=flag-dest",
		"--no-latest",
		"--file=a.js", "--file=b.js",
	}))

	cfg, err := Load(fs, writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, "flag-dest", cfg.Destination)
	assert.False(t, cfg.Latest)
	assert.Equal(t, []string{"a.js", "b.js"}, cfg.Files)
	assert.Equal(t, "assets", cfg.S3.Bucket)
}

func TestLoad_TrimsDestinationSlashes(t *testing.T) {
	fs := deployFlags()
	require.NoError(t, fs.Parse([]string{"--destination=/static/js/"}))

	cfg, err := Load(fs, writeConfig(t, "dir: dist\n"))
	require.NoError(t, err)
	assert.Equal(t, "static/js", cfg.Destination)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "no source",
			cfg:     Config{S3: S3Config{Bucket: "b"}, Destination: "d"},
			wantErr: "one of files or dir is required",
		},
		{
			name:    "no bucket",
			cfg:     Config{Dir: "dist", Destination: "d"},
			wantErr: "s3.bucket is required",
		},
		{
			name:    "no destination",
			cfg:     Config{Files: []string{"a.js"}, S3: S3Config{Bucket: "b"}},
			wantErr: "destination is required",
		},
		{
			name: "valid",
			cfg:  Config{Files: []string{"a.js"}, S3: S3Config{Bucket: "b"}, Destination: "d"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateDeploy()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestConfig_FileSource(t *testing.T) {
	cfg := Config{Files: []string{"a.js"}, Dir: "dist"}
	assert.Equal(t, uploader.ExplicitFiles{"a.js"}, cfg.FileSource())

	cfg = Config{Dir: "dist"}
	assert.Equal(t, uploader.FromDirectory("dist"), cfg.FileSource())
}

func TestConfig_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := &Config{
		S3:          S3Config{Bucket: "assets"},
		Destination: "testbucket",
		Version:     "0.1.1",
		Latest:      true,
		Files:       []string{"a.js"},
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, cfg.S3.Bucket, loaded.S3.Bucket)
	assert.Equal(t, cfg.Files, loaded.Files)
	assert.NoError(t, ValidateFile(path))
}

func TestValidateBytes(t *testing.T) {
	assert.NoError(t, ValidateBytes([]byte(sampleConfig)))
	assert.NoError(t, ValidateBytes([]byte("")))

	err := ValidateBytes([]byte("latest: yes please\nbogus: 1\n"))
	require.Error(t, err)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Len(t, schemaErr.Issues, 2)

	err = ValidateBytes([]byte("version: 1.10\n"))
	require.ErrorAs(t, err, &schemaErr)
	assert.Len(t, schemaErr.Issues, 1)
	assert.NoError(t, ValidateBytes([]byte("version: \"1.10\"\n")))
}
