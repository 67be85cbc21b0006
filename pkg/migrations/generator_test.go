package migrations

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateToTempDir(t *testing.T, generate func(*Config) error) string {
	t.Helper()

	config := DefaultConfig()
	config.OutputFolder = t.TempDir()
	config.OutputFilename = "backfill.sql"

	require.NoError(t, generate(&config))

	content, err := os.ReadFile(filepath.Join(config.OutputFolder, config.OutputFilename))
	require.NoError(t, err)
	return string(content)
}

func TestGeneratePostgres_GuardedTriggersAndReplaceableFunction(t *testing.T) {
	sql := generateToTempDir(t, GeneratePostgres)

	assert.Contains(t, sql, "CREATE OR REPLACE FUNCTION fn_touch_actualizado_en")
	assert.Contains(t, sql, "IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_categorias_touch'")
	assert.Contains(t, sql, "IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_direcciones_envio_touch'")
	assert.Contains(t, sql, "ALTER TABLE app_parametros ADD COLUMN IF NOT EXISTS creado_en")
	// The function replace must sit outside any trigger-exists guard.
	functionIdx := strings.Index(sql, "CREATE OR REPLACE FUNCTION")
	guardIdx := strings.Index(sql, "DO $do$")
	assert.Less(t, functionIdx, guardIdx)
}

func TestGenerateMySQL_DropAndRecreateTriggers(t *testing.T) {
	sql := generateToTempDir(t, GenerateMySQL)

	assert.Contains(t, sql, "DROP TRIGGER IF EXISTS trg_categorias_touch;")
	assert.Contains(t, sql, "CREATE TRIGGER trg_categorias_touch BEFORE UPDATE ON categorias")
	assert.NotContains(t, sql, "CREATE OR REPLACE FUNCTION")
}

func TestGenerateSQLite_GuardedTriggers(t *testing.T) {
	sql := generateToTempDir(t, GenerateSQLite)

	assert.Contains(t, sql, "CREATE TRIGGER IF NOT EXISTS trg_categorias_touch")
	assert.Contains(t, sql, "CREATE TRIGGER IF NOT EXISTS trg_direcciones_envio_touch")
	assert.Contains(t, sql, "ALTER TABLE pedido_notas ADD COLUMN visible_para_cliente BOOLEAN NOT NULL DEFAULT 0")
}

func TestDefaultConfig_TimestampedFilename(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "migrations", config.OutputFolder)
	assert.Regexp(t, `^\d{14}_timestamp_backfill\.sql$`, config.OutputFilename)
}

func TestValidateIdentifier(t *testing.T) {
	assert.NoError(t, validateIdentifier("categorias", "Table"))
	assert.NoError(t, validateIdentifier("trg_categorias_touch", "Object"))
	assert.Error(t, validateIdentifier("", "Table"))
	assert.Error(t, validateIdentifier("1bad", "Table"))
	assert.Error(t, validateIdentifier("bad;drop", "Table"))
}
