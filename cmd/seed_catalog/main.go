// seed_catalog genera un script SQL para poblar el catálogo de una empresa
// a partir de la exportación CSV de un POS antiguo (codificación ISO-8859-1,
// separada por punto y coma).
//
// Formato esperado por fila: tipo;nombre;categoria;unidad;costo;cantidad;precio
//   tipo = INSUMO | PRODUCTO. En INSUMO, costo/cantidad son el costo y tamaño
//   de la presentación; en PRODUCTO, precio es el precio de venta por taza.
//
// Uso: go run ./cmd/seed_catalog <business_id> [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type fila struct {
	tipo      string
	nombre    string
	categoria string
	unidad    string
	costo     string
	cantidad  string
	precio    string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed_catalog <business_id> [catalogo.csv]")
		os.Exit(1)
	}
	businessID := strings.TrimSpace(os.Args[1])

	csvPath := "catalogo.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// Los POS viejos exportan en ISO-8859-1; sin transformar, las tildes y
	// las eñes llegan rotas a la base.
	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var insumos, productos []fila
	line := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer CSV (línea %d): %v\n", line+1, err)
			os.Exit(1)
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "tipo") {
			continue // encabezado
		}
		if len(rec) < 7 {
			fmt.Fprintf(os.Stderr, "Línea %d: se esperaban 7 columnas, hay %d\n", line, len(rec))
			os.Exit(1)
		}
		fl := fila{
			tipo:      strings.ToUpper(strings.TrimSpace(rec[0])),
			nombre:    strings.TrimSpace(rec[1]),
			categoria: strings.ToLower(strings.TrimSpace(rec[2])),
			unidad:    strings.TrimSpace(rec[3]),
			costo:     normalizarDecimal(rec[4]),
			cantidad:  normalizarDecimal(rec[5]),
			precio:    normalizarDecimal(rec[6]),
		}
		if fl.nombre == "" {
			continue
		}
		switch fl.tipo {
		case "INSUMO":
			if err := validarNumeros(fl.costo, fl.cantidad); err != nil {
				fmt.Fprintf(os.Stderr, "Línea %d (%s): %v\n", line, fl.nombre, err)
				os.Exit(1)
			}
			insumos = append(insumos, fl)
		case "PRODUCTO":
			if err := validarNumeros(fl.precio); err != nil {
				fmt.Fprintf(os.Stderr, "Línea %d (%s): %v\n", line, fl.nombre, err)
				os.Exit(1)
			}
			productos = append(productos, fl)
		default:
			fmt.Fprintf(os.Stderr, "Línea %d: tipo desconocido %q\n", line, fl.tipo)
			os.Exit(1)
		}
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	fmt.Fprintf(out, "-- Catálogo inicial para la empresa %s\n", businessID)
	fmt.Fprintf(out, "-- Generado desde %s\n\n", filepath.Base(csvPath))

	out.WriteString("-- 1. Insumos (presentaciones)\n")
	for _, in := range insumos {
		fmt.Fprintf(out,
			"INSERT INTO ingredients (id, business_id, name, category, unit, base_unit_cost, base_unit_qty)\n"+
				"VALUES ('%s', '%s', '%s', '%s', '%s', %s, %s)\n"+
				"ON CONFLICT (business_id, name) DO UPDATE\n"+
				"  SET category = EXCLUDED.category, unit = EXCLUDED.unit,\n"+
				"      base_unit_cost = EXCLUDED.base_unit_cost, base_unit_qty = EXCLUDED.base_unit_qty,\n"+
				"      updated_at = now();\n",
			uuid.NewString(), escapeSQL(businessID), escapeSQL(in.nombre),
			escapeSQL(in.categoria), escapeSQL(in.unidad), in.costo, in.cantidad)
	}

	out.WriteString("\n-- 2. Productos (sin receta: se arma desde la API)\n")
	for i, p := range productos {
		sku := fmt.Sprintf("POS-%03d", i+1)
		fmt.Fprintf(out,
			"INSERT INTO products (id, business_id, sku, name, category, sale_price, status)\n"+
				"VALUES ('%s', '%s', '%s', '%s', '%s', %s, 'draft')\n"+
				"ON CONFLICT (business_id, sku) DO UPDATE\n"+
				"  SET name = EXCLUDED.name, category = EXCLUDED.category,\n"+
				"      sale_price = EXCLUDED.sale_price, updated_at = now();\n",
			uuid.NewString(), escapeSQL(businessID), sku, escapeSQL(p.nombre),
			escapeSQL(p.categoria), p.precio)
	}

	fmt.Printf("Generado %s: %d insumos, %d productos\n", outPath, len(insumos), len(productos))
}

// normalizarDecimal acepta el formato latino del POS ("1.234,56") y lo deja
// como decimal SQL ("1234.56").
func normalizarDecimal(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	if s == "" {
		return "0"
	}
	return s
}

func validarNumeros(vals ...string) error {
	for _, v := range vals {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("valor numérico inválido %q", v)
		}
		if n < 0 {
			return fmt.Errorf("valor negativo %q", v)
		}
	}
	return nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
