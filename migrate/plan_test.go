package migrate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmactiva/schemactl"
)

func TestPlan_FunctionPrecedesTriggers(t *testing.T) {
	plan := Plan()

	functionIdx := -1
	firstTriggerIdx := -1
	for i, step := range plan {
		if step.Kind == schemactl.StepReplaceFunction && functionIdx == -1 {
			functionIdx = i
		}
		if step.Kind == schemactl.StepCreateTrigger && firstTriggerIdx == -1 {
			firstTriggerIdx = i
		}
	}

	require.NotEqual(t, -1, functionIdx, "plan must contain the touch function")
	require.NotEqual(t, -1, firstTriggerIdx, "plan must contain touch triggers")
	assert.Less(t, functionIdx, firstTriggerIdx, "touch function must be created before the triggers that reference it")
}

func TestPlan_TouchFunctionReplacesUnconditionally(t *testing.T) {
	plan := Plan()

	for _, step := range plan {
		if step.Kind != schemactl.StepReplaceFunction {
			continue
		}
		sql := step.SQL[schemactl.DialectPostgres]
		assert.Contains(t, sql, "CREATE OR REPLACE FUNCTION")
		assert.Contains(t, sql, "NEW.actualizado_en := now()")
	}
}

func TestPlan_TouchTriggersCoverBothTables(t *testing.T) {
	plan := Plan()

	tables := map[string]bool{}
	for _, step := range plan {
		if step.Kind == schemactl.StepCreateTrigger {
			tables[step.Table] = true
		}
	}

	assert.True(t, tables["categorias"])
	assert.True(t, tables["direcciones_envio"])
	assert.Len(t, tables, 2)
}

func TestPlan_CreatedAtDefaultsToInsertionTime(t *testing.T) {
	plan := Plan()

	for _, step := range plan {
		if step.Object != "creado_en" {
			continue
		}
		assert.Contains(t, step.SQL[schemactl.DialectPostgres], "NOT NULL DEFAULT now()", step.Name)
		assert.Contains(t, step.SQL[schemactl.DialectMySQL], "DEFAULT CURRENT_TIMESTAMP", step.Name)
	}
}

func TestPlan_VisibleParaClienteDefaultsFalse(t *testing.T) {
	plan := Plan()

	var step schemactl.Step
	found := false
	for _, s := range plan {
		if s.Object == "visible_para_cliente" {
			step = s
			found = true
		}
	}
	require.True(t, found)

	assert.Equal(t, "pedido_notas", step.Table)
	assert.Contains(t, step.SQL[schemactl.DialectPostgres], "BOOLEAN NOT NULL DEFAULT false")
	assert.Contains(t, step.SQL[schemactl.DialectMySQL], "DEFAULT FALSE")
	assert.Contains(t, step.SQL[schemactl.DialectSQLite], "DEFAULT 0")
}

func TestPlan_StepNamesAreUnique(t *testing.T) {
	plan := Plan()

	seen := map[string]bool{}
	for _, step := range plan {
		require.NotEmpty(t, step.Name)
		assert.False(t, seen[step.Name], "duplicate step name %s", step.Name)
		seen[step.Name] = true
	}
}

func TestPlan_GuardedPostgresColumnAdds(t *testing.T) {
	// Postgres statements keep IF NOT EXISTS so the rendered script is
	// re-runnable on its own, independent of the runner's probes.
	for _, step := range Plan() {
		if step.Kind != schemactl.StepAddColumn {
			continue
		}
		assert.True(t, strings.Contains(step.SQL[schemactl.DialectPostgres], "ADD COLUMN IF NOT EXISTS"), step.Name)
	}
}
