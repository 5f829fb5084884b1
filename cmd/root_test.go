package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
	"github.com/bigdbm/extractreg/internal/infrastructure/layouts"
	"github.com/bigdbm/extractreg/internal/manifest"
	"github.com/bigdbm/extractreg/internal/presentation"
)

type cliEnv struct {
	dir    string
	config string
}

func newCLIEnv(t *testing.T, store, layouts string) cliEnv {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := "store:\n" +
		"  backend: " + store + "\n" +
		"  root: " + filepath.Join(dir, "data") + "\n" +
		"  sqlite_path: " + filepath.Join(dir, "extractreg.db") + "\n" +
		"layouts:\n" +
		"  backend: " + layouts + "\n" +
		"  root: " + filepath.Join(dir, "layouts") + "\n" +
		"  cache_ttl: 1m\n" +
		"log:\n" +
		"  path: " + filepath.Join(dir, "debug.log") + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return cliEnv{dir: dir, config: configPath}
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func (e cliEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--config", e.config}, args...))
	err := Execute()
	return stdout.String(), stderr.String(), err
}

var createArgs = []string{
	"create",
	"--layout-id", "1001",
	"--delimiter", domain.DelimiterTab,
	"--fully-qualified", "",
	"--split-by-size", domain.SplitByOneFile,
	"--storage-files", domain.StorageFilesNo,
	"--archive-type", domain.ArchiveNone,
	"--extension", domain.ExtensionTSV,
	"--internal-name", "daily",
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "validation", err: &domain.ValidationError{Attribute: domain.AttrDelimiter}, want: ExitValidation},
		{name: "schema", err: &manifest.SchemaError{}, want: ExitValidation},
		{name: "duplicate", err: &domain.DuplicateError{}, want: ExitDuplicate},
		{name: "store", err: &domain.StoreError{Err: errors.New("x")}, want: ExitStore},
		{name: "other", err: errors.New("boom"), want: ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestCLI_CreateAndQuery_Parquet(t *testing.T) {
	env := newCLIEnv(t, "parquet", "filesystem")

	out, _, err := env.run(t, "layout:register", "1001", "-d", "daily sales")
	require.NoError(t, err)
	require.Contains(t, out, "registered layout 1001")

	out, _, err = env.run(t, createArgs...)
	require.NoError(t, err)
	var created presentation.ExtractTypeDTO
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	require.NotEmpty(t, created.UID)
	require.Equal(t, "daily", created.InternalName)

	_, err = os.Stat(filepath.Join(env.dir, "data", "extract-types", created.UID))
	require.NoError(t, err, "record directory should exist under the product base")

	out, _, err = env.run(t, "query", "--layout-id", "1001", "--extension", domain.ExtensionTSV)
	require.NoError(t, err)
	var found []presentation.ExtractTypeDTO
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	require.Len(t, found, 1)
	require.Equal(t, created.UID, found[0].UID)

	out, _, err = env.run(t, "query", "--extension", domain.ExtensionCSV)
	require.NoError(t, err)
	require.Equal(t, "[]\n", out)
}

func TestCLI_CreateDuplicate(t *testing.T) {
	env := newCLIEnv(t, "parquet", "filesystem")
	_, _, err := env.run(t, "layout:register", "1001")
	require.NoError(t, err)

	_, _, err = env.run(t, createArgs...)
	require.NoError(t, err)

	_, stderr, err := env.run(t, createArgs...)
	require.Error(t, err)
	require.Equal(t, ExitDuplicate, ExitCode(err))
	require.Contains(t, stderr, `"duplicate"`)
}

func TestCLI_CreateValidation(t *testing.T) {
	env := newCLIEnv(t, "parquet", "filesystem")
	_, _, err := env.run(t, "layout:register", "1001")
	require.NoError(t, err)

	t.Run("unknown layout", func(t *testing.T) {
		args := append([]string{}, createArgs...)
		args[2] = "9999"
		_, stderr, err := env.run(t, args...)
		require.Equal(t, ExitValidation, ExitCode(err))
		require.Contains(t, stderr, "layout_id")
	})

	t.Run("missing attribute", func(t *testing.T) {
		_, stderr, err := env.run(t, "create", "--layout-id", "1001")
		require.Equal(t, ExitValidation, ExitCode(err))
		require.Contains(t, stderr, "cannot be null")
	})

	t.Run("out of vocabulary", func(t *testing.T) {
		args := append(append([]string{}, createArgs...), "--extension", "xlsx")
		_, stderr, err := env.run(t, args...)
		require.Equal(t, ExitValidation, ExitCode(err))
		require.Contains(t, stderr, `"allowed"`)
	})
}

func TestCLI_QueryEmptyRegistry(t *testing.T) {
	env := newCLIEnv(t, "parquet", "filesystem")
	_, stderr, err := env.run(t, "query")
	require.Error(t, err)
	require.Equal(t, ExitStore, ExitCode(err))
	require.Contains(t, stderr, `"store"`)
}

func TestCLI_SQLiteBackends(t *testing.T) {
	env := newCLIEnv(t, "sqlite", "sqlite")

	_, _, err := env.run(t, "layout:register", "1001")
	require.NoError(t, err)
	_, _, err = env.run(t, "layout:register", "2002")
	require.NoError(t, err)

	out, _, err := env.run(t, "layout:list")
	require.NoError(t, err)
	var ids []string
	require.NoError(t, json.Unmarshal([]byte(out), &ids))
	require.Equal(t, []string{"1001", "2002"}, ids)

	_, _, err = env.run(t, createArgs...)
	require.NoError(t, err)

	out, _, err = env.run(t, "query", "-o", "table")
	require.NoError(t, err)
	require.Contains(t, out, "1 extract types")
}

func TestCLI_Import(t *testing.T) {
	env := newCLIEnv(t, "parquet", "filesystem")
	_, _, err := env.run(t, "layout:register", "1001")
	require.NoError(t, err)

	manifestPath := filepath.Join(env.dir, "extracts.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`extract_types:
  - layout_id: 1001
    delimiter: tab sep
    fully_qualified: ""
    split_by_size: One file
    storage_files: "no"
    archive_type: "no"
    extension: tsv
  - layout_id: 1001
    delimiter: comma sep
    fully_qualified: '"'
    split_by_size: 250MB
    storage_files: "yes"
    archive_type: gz
    extension: csv
  - layout_id: 1001
    delimiter: tab sep
    fully_qualified: ""
    split_by_size: One file
    storage_files: "no"
    archive_type: "no"
    extension: tsv
`), 0o600))

	out, _, err := env.run(t, "import", "-f", manifestPath)
	require.Error(t, err)
	require.Equal(t, ExitDuplicate, ExitCode(err))

	var result presentation.ImportResultDTO
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Created, 2)
	require.NotNil(t, result.Failed)
	require.Equal(t, 2, *result.Failed)
}

func TestCLI_ImportSchemaError(t *testing.T) {
	env := newCLIEnv(t, "parquet", "filesystem")
	manifestPath := filepath.Join(env.dir, "bad.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte("extract_types: []\n"), 0o600))

	_, stderr, err := env.run(t, "import", "-f", manifestPath)
	require.Equal(t, ExitValidation, ExitCode(err))
	require.Contains(t, stderr, "invalid manifest")
}

func TestCLI_Vocabulary(t *testing.T) {
	env := newCLIEnv(t, "parquet", "filesystem")
	out, _, err := env.run(t, "vocabulary")
	require.NoError(t, err)

	var vocab []presentation.VocabularyDTO
	require.NoError(t, json.Unmarshal([]byte(out), &vocab))
	require.Len(t, vocab, 6)
}

func TestCLI_LayoutListNeedsSQLite(t *testing.T) {
	env := newCLIEnv(t, "parquet", "filesystem")
	_, _, err := env.run(t, "layout:list")
	require.Error(t, err)
	require.Contains(t, err.Error(), "layout:list needs")
}

func TestCLI_InvalidConfig(t *testing.T) {
	env := newCLIEnv(t, "csv", "filesystem")
	_, stderr, err := env.run(t, "vocabulary")
	require.Error(t, err)
	require.Equal(t, ExitFailure, ExitCode(err))
	require.Contains(t, stderr, "store.backend")
}

func TestCLI_EnvOverridesProductBase(t *testing.T) {
	env := newCLIEnv(t, "parquet", "filesystem")
	t.Setenv("EXTRACTREG_PRODUCT_BASE", "extract-types-staging")

	_, _, err := env.run(t, "layout:register", "1001")
	require.NoError(t, err)
	out, _, err := env.run(t, createArgs...)
	require.NoError(t, err)

	var created presentation.ExtractTypeDTO
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	_, err = os.Stat(filepath.Join(env.dir, "data", "extract-types-staging", created.UID))
	require.NoError(t, err)
}

func TestCLI_UnknownOutputFormat(t *testing.T) {
	env := newCLIEnv(t, "parquet", "filesystem")
	_, stderr, err := env.run(t, "vocabulary", "-o", "xml")
	require.Error(t, err)
	require.Contains(t, stderr, "unknown output format")
}

func TestWatchLayouts_EvictsChangedLayout(t *testing.T) {
	root := t.TempDir()
	fs := layouts.NewFilesystemChecker(root)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, fs.RegisterLayout(ctx, "1001", ""))

	cache := layouts.NewCachedChecker(fs, time.Hour)
	require.NoError(t, cache.LayoutExists(ctx, "1001"))

	stop := watchLayouts(ctx, root, cache)
	defer stop()

	require.NoError(t, os.RemoveAll(fs.LayoutDir("1001")))

	require.Eventually(t, func() bool {
		return cache.LayoutExists(ctx, "1001") != nil
	}, 3*time.Second, 50*time.Millisecond, "removed layout should be evicted from the cache")
}
