package migrate

import "github.com/farmactiva/schemactl"

// Touch trigger object names. The function is shared by both triggers,
// so logic fixes only need to land in one place.
const (
	TouchFunction                = "fn_touch_actualizado_en"
	CategoriasTouchTrigger       = "trg_categorias_touch"
	DireccionesEnvioTouchTrigger = "trg_direcciones_envio_touch"
)

// touchFunctionPostgres overwrites actualizado_en on every UPDATE,
// regardless of any value the caller supplied for that column.
const touchFunctionPostgres = `CREATE OR REPLACE FUNCTION fn_touch_actualizado_en() RETURNS trigger AS $$
BEGIN
    NEW.actualizado_en := now();
    RETURN NEW;
END;
$$ LANGUAGE plpgsql`

// Plan returns the ordered steps of the timestamp and addressing
// backfill for the store schema:
//
//   - app_parametros: creado_en (defaulted), actualizado_en (nullable)
//   - categorias: creado_en, actualizado_en + touch trigger
//   - direcciones_envio: actualizado_en, codigo_postal, pais + touch trigger
//   - pedido_notas: estado_codigo_destino, visible_para_cliente
//
// The touch function precedes the triggers that reference it. SQLite
// cannot add columns with non-constant defaults, so its timestamp
// columns are added nullable and stamped by the application.
func Plan() []schemactl.Step {
	return []schemactl.Step{
		{
			Name:   "app_parametros.creado_en",
			Kind:   schemactl.StepAddColumn,
			Table:  "app_parametros",
			Object: "creado_en",
			SQL: map[schemactl.Dialect]string{
				schemactl.DialectPostgres: `ALTER TABLE app_parametros ADD COLUMN IF NOT EXISTS creado_en TIMESTAMP NOT NULL DEFAULT now()`,
				schemactl.DialectMySQL:    `ALTER TABLE app_parametros ADD COLUMN creado_en DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP`,
				schemactl.DialectSQLite:   `ALTER TABLE app_parametros ADD COLUMN creado_en TIMESTAMP`,
			},
		},
		{
			Name:   "app_parametros.actualizado_en",
			Kind:   schemactl.StepAddColumn,
			Table:  "app_parametros",
			Object: "actualizado_en",
			SQL: map[schemactl.Dialect]string{
				schemactl.DialectPostgres: `ALTER TABLE app_parametros ADD COLUMN IF NOT EXISTS actualizado_en TIMESTAMP`,
				schemactl.DialectMySQL:    `ALTER TABLE app_parametros ADD COLUMN actualizado_en DATETIME NULL`,
				schemactl.DialectSQLite:   `ALTER TABLE app_parametros ADD COLUMN actualizado_en TIMESTAMP`,
			},
		},
		{
			Name:   "categorias.creado_en",
			Kind:   schemactl.StepAddColumn,
			Table:  "categorias",
			Object: "creado_en",
			SQL: map[schemactl.Dialect]string{
				schemactl.DialectPostgres: `ALTER TABLE categorias ADD COLUMN IF NOT EXISTS creado_en TIMESTAMP NOT NULL DEFAULT now()`,
				schemactl.DialectMySQL:    `ALTER TABLE categorias ADD COLUMN creado_en DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP`,
				schemactl.DialectSQLite:   `ALTER TABLE categorias ADD COLUMN creado_en TIMESTAMP`,
			},
		},
		{
			Name:   "categorias.actualizado_en",
			Kind:   schemactl.StepAddColumn,
			Table:  "categorias",
			Object: "actualizado_en",
			SQL: map[schemactl.Dialect]string{
				schemactl.DialectPostgres: `ALTER TABLE categorias ADD COLUMN IF NOT EXISTS actualizado_en TIMESTAMP`,
				schemactl.DialectMySQL:    `ALTER TABLE categorias ADD COLUMN actualizado_en DATETIME NULL`,
				schemactl.DialectSQLite:   `ALTER TABLE categorias ADD COLUMN actualizado_en TIMESTAMP`,
			},
		},
		{
			Name:   "direcciones_envio.actualizado_en",
			Kind:   schemactl.StepAddColumn,
			Table:  "direcciones_envio",
			Object: "actualizado_en",
			SQL: map[schemactl.Dialect]string{
				schemactl.DialectPostgres: `ALTER TABLE direcciones_envio ADD COLUMN IF NOT EXISTS actualizado_en TIMESTAMP`,
				schemactl.DialectMySQL:    `ALTER TABLE direcciones_envio ADD COLUMN actualizado_en DATETIME NULL`,
				schemactl.DialectSQLite:   `ALTER TABLE direcciones_envio ADD COLUMN actualizado_en TIMESTAMP`,
			},
		},
		{
			Name:   "direcciones_envio.codigo_postal",
			Kind:   schemactl.StepAddColumn,
			Table:  "direcciones_envio",
			Object: "codigo_postal",
			SQL: map[schemactl.Dialect]string{
				schemactl.DialectPostgres: `ALTER TABLE direcciones_envio ADD COLUMN IF NOT EXISTS codigo_postal VARCHAR(20)`,
				schemactl.DialectMySQL:    `ALTER TABLE direcciones_envio ADD COLUMN codigo_postal VARCHAR(20) NULL`,
				schemactl.DialectSQLite:   `ALTER TABLE direcciones_envio ADD COLUMN codigo_postal VARCHAR(20)`,
			},
		},
		{
			Name:   "direcciones_envio.pais",
			Kind:   schemactl.StepAddColumn,
			Table:  "direcciones_envio",
			Object: "pais",
			SQL: map[schemactl.Dialect]string{
				schemactl.DialectPostgres: `ALTER TABLE direcciones_envio ADD COLUMN IF NOT EXISTS pais VARCHAR(80) DEFAULT 'Chile'`,
				schemactl.DialectMySQL:    `ALTER TABLE direcciones_envio ADD COLUMN pais VARCHAR(80) NULL DEFAULT 'Chile'`,
				schemactl.DialectSQLite:   `ALTER TABLE direcciones_envio ADD COLUMN pais VARCHAR(80) DEFAULT 'Chile'`,
			},
		},
		{
			Name:   "pedido_notas.estado_codigo_destino",
			Kind:   schemactl.StepAddColumn,
			Table:  "pedido_notas",
			Object: "estado_codigo_destino",
			SQL: map[schemactl.Dialect]string{
				schemactl.DialectPostgres: `ALTER TABLE pedido_notas ADD COLUMN IF NOT EXISTS estado_codigo_destino VARCHAR(40)`,
				schemactl.DialectMySQL:    `ALTER TABLE pedido_notas ADD COLUMN estado_codigo_destino VARCHAR(40) NULL`,
				schemactl.DialectSQLite:   `ALTER TABLE pedido_notas ADD COLUMN estado_codigo_destino VARCHAR(40)`,
			},
		},
		{
			Name:   "pedido_notas.visible_para_cliente",
			Kind:   schemactl.StepAddColumn,
			Table:  "pedido_notas",
			Object: "visible_para_cliente",
			SQL: map[schemactl.Dialect]string{
				schemactl.DialectPostgres: `ALTER TABLE pedido_notas ADD COLUMN IF NOT EXISTS visible_para_cliente BOOLEAN NOT NULL DEFAULT false`,
				schemactl.DialectMySQL:    `ALTER TABLE pedido_notas ADD COLUMN visible_para_cliente BOOLEAN NOT NULL DEFAULT FALSE`,
				schemactl.DialectSQLite:   `ALTER TABLE pedido_notas ADD COLUMN visible_para_cliente BOOLEAN NOT NULL DEFAULT 0`,
			},
		},
		{
			Name:   "function." + TouchFunction,
			Kind:   schemactl.StepReplaceFunction,
			Object: TouchFunction,
			SQL: map[schemactl.Dialect]string{
				// MySQL and SQLite express the touch logic inline in the
				// trigger body; there is no separate function to replace.
				schemactl.DialectPostgres: touchFunctionPostgres,
			},
		},
		{
			Name:   "categorias." + CategoriasTouchTrigger,
			Kind:   schemactl.StepCreateTrigger,
			Table:  "categorias",
			Object: CategoriasTouchTrigger,
			SQL: map[schemactl.Dialect]string{
				schemactl.DialectPostgres: `CREATE TRIGGER trg_categorias_touch BEFORE UPDATE ON categorias FOR EACH ROW EXECUTE FUNCTION fn_touch_actualizado_en()`,
				schemactl.DialectMySQL:    `CREATE TRIGGER trg_categorias_touch BEFORE UPDATE ON categorias FOR EACH ROW SET NEW.actualizado_en = CURRENT_TIMESTAMP`,
				schemactl.DialectSQLite: `CREATE TRIGGER trg_categorias_touch AFTER UPDATE ON categorias FOR EACH ROW
BEGIN
    UPDATE categorias SET actualizado_en = datetime('now') WHERE rowid = NEW.rowid;
END`,
			},
		},
		{
			Name:   "direcciones_envio." + DireccionesEnvioTouchTrigger,
			Kind:   schemactl.StepCreateTrigger,
			Table:  "direcciones_envio",
			Object: DireccionesEnvioTouchTrigger,
			SQL: map[schemactl.Dialect]string{
				schemactl.DialectPostgres: `CREATE TRIGGER trg_direcciones_envio_touch BEFORE UPDATE ON direcciones_envio FOR EACH ROW EXECUTE FUNCTION fn_touch_actualizado_en()`,
				schemactl.DialectMySQL:    `CREATE TRIGGER trg_direcciones_envio_touch BEFORE UPDATE ON direcciones_envio FOR EACH ROW SET NEW.actualizado_en = CURRENT_TIMESTAMP`,
				schemactl.DialectSQLite: `CREATE TRIGGER trg_direcciones_envio_touch AFTER UPDATE ON direcciones_envio FOR EACH ROW
BEGIN
    UPDATE direcciones_envio SET actualizado_en = datetime('now') WHERE rowid = NEW.rowid;
END`,
			},
		},
	}
}
