// seed genera un script SQL para poblar empleados y registros de turno de una
// empresa existente, a partir de archivos CSV exportados de sistemas de
// asistencia (frecuentemente en Latin-1 / ISO-8859-1).
//
// Uso: go run ./cmd/seed <company_id> [empleados.csv] [turnos.csv]
// Por defecto busca empleados.csv y turnos.csv en el directorio actual.
// Escribe: deploy/seed_demo.sql
//
// Formato empleados.csv: nombre,apellido,email,tarifa_hora
// Formato turnos.csv:    email,entrada,salida (RFC3339); los turnos se
// insertan aprobados con las horas partidas contra un tope diario de 8.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Nomina-api/internal/domain/payroll"
)

// seedDailyCap tope diario usado sólo para los datos de demo.
var seedDailyCap = decimal.NewFromInt(8)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed <company_id> [empleados.csv] [turnos.csv]")
		os.Exit(1)
	}
	companyID := os.Args[1]
	employeesPath := "empleados.csv"
	timeLogsPath := "turnos.csv"
	if len(os.Args) > 2 {
		employeesPath = os.Args[2]
	}
	if len(os.Args) > 3 {
		timeLogsPath = os.Args[3]
	}

	employees, err := readCSV(employeesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer empleados: %v\n", err)
		os.Exit(1)
	}

	// turnos.csv es opcional
	timeLogs, err := readCSV(timeLogsPath)
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Leer turnos: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outDir := filepath.Join(moduleRoot, "deploy")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	outPath := filepath.Join(outDir, "seed_demo.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	fmt.Fprintf(out, "-- Datos de demo para la empresa %s\n", companyID)
	fmt.Fprintf(out, "-- Generado desde %s y %s\n\n", employeesPath, timeLogsPath)

	out.WriteString("-- 1. Empleados\n")
	nEmp := 0
	for _, rec := range employees {
		if len(rec) < 4 {
			continue
		}
		name := escapeSQL(strings.TrimSpace(rec[0]))
		last := escapeSQL(strings.TrimSpace(rec[1]))
		email := escapeSQL(strings.ToLower(strings.TrimSpace(rec[2])))
		rate, err := decimal.NewFromString(strings.TrimSpace(rec[3]))
		if err != nil || email == "" {
			continue
		}
		fmt.Fprintf(out, "INSERT INTO employees (id, company_id, first_name, last_name, email, hourly_rate, active, created_at, updated_at)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', '%s', '%s', '%s', %s, TRUE, NOW(), NOW())\n",
			escapeSQL(companyID), name, last, email, rate.String())
		out.WriteString("ON CONFLICT (company_id, email) DO NOTHING;\n")
		nEmp++
	}

	out.WriteString("\n-- 2. Turnos aprobados (referencia por email)\n")
	nLogs := 0
	for _, rec := range timeLogs {
		if len(rec) < 3 {
			continue
		}
		email := escapeSQL(strings.ToLower(strings.TrimSpace(rec[0])))
		clockIn, err1 := time.Parse(time.RFC3339, strings.TrimSpace(rec[1]))
		clockOut, err2 := time.Parse(time.RFC3339, strings.TrimSpace(rec[2]))
		if err1 != nil || err2 != nil || !clockOut.After(clockIn) {
			continue
		}
		duration := decimal.NewFromFloat(clockOut.Sub(clockIn).Hours())
		regular, bonus := payroll.SplitHours(duration, seedDailyCap)
		fmt.Fprintf(out, "INSERT INTO time_logs (id, employee_id, clock_in, clock_out, duration, regular_hours, bonus_hours, status, approved_at, created_at, updated_at)\n")
		fmt.Fprintf(out, "SELECT gen_random_uuid(), id, '%s', '%s', %s, %s, %s, 'approved', NOW(), NOW(), NOW()\n",
			clockIn.Format(time.RFC3339), clockOut.Format(time.RFC3339),
			duration.StringFixed(4), regular.StringFixed(4), bonus.StringFixed(4))
		fmt.Fprintf(out, "FROM employees WHERE company_id = '%s' AND email = '%s';\n",
			escapeSQL(companyID), email)
		nLogs++
	}

	fmt.Printf("Generado %s: %d empleados, %d turnos\n", outPath, nEmp, nLogs)
}

// readCSV lee un CSV en ISO-8859-1 (o UTF-8 plano, que es un superconjunto
// seguro para estos campos) y descarta la fila de encabezado si la detecta.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if len(records) > 0 && looksLikeHeader(records[0]) {
		records = records[1:]
	}
	return records, nil
}

func looksLikeHeader(rec []string) bool {
	for _, field := range rec {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "nombre", "apellido", "email", "tarifa_hora", "entrada", "salida":
			return true
		}
	}
	return false
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
