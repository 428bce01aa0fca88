package flatfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// Sample is the example flat file written by the sample command.
const Sample = `# Sample database inventory file
# Format: PLATFORM SERVER_NAME DB_NAME SERVICE_NAME PORT VERSION
# Lines starting with # are comments
# NO CREDENTIALS IN FLAT FILE - DB team provides passwords separately

# MSSQL Examples
MSSQL sqlserver01.example.com master default 1433 2019
MSSQL sqlserver02.example.com production_db null 1433 2018
MSSQL sqlserver03.example.com test_db SQLEXPRESS 1434 2016
MSSQL m02dsm3 m02dsm3 BIRS_Confidential 1733 2017

# Multiple databases on same server
MSSQL dbserver.example.com finance_db null 1433 2019
MSSQL dbserver.example.com hr_db null 1433 2019
MSSQL dbserver.example.com sales_db null 1433 2019

# Oracle Examples (for future use)
ORACLE oraserver01.example.com ORCL XE 1521 19c
ORACLE oraserver02.example.com PRODDB null 1521 12c

# Sybase Examples (for future use)
SYBASE sybserver01.example.com master SAP_ASE 5000 16.0
`

type platformProfile struct {
	name     string
	port     int
	versions []string
}

var profiles = []platformProfile{
	{"MSSQL", 1433, []string{"2016", "2017", "2019", "2022"}},
	{"ORACLE", 1521, []string{"11g", "12c", "19c"}},
	{"SYBASE", 5000, []string{"15.7", "16.0"}},
}

// Synthetic writes rows random data lines to w, preceded by a comment header.
func Synthetic(w io.Writer, rows int, faker *gofakeit.Faker) error {
	if rows <= 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n# Synthetic examples (%d rows)\n", rows); err != nil {
		return err
	}
	for i := 0; i < rows; i++ {
		p := profiles[faker.Number(0, len(profiles)-1)]

		service := NullService
		if faker.Bool() {
			service = token(faker.Noun())
		}

		_, err := fmt.Fprintf(w, "%s %s %s %s %d %s\n",
			p.name,
			token(faker.DomainName()),
			token(faker.Noun())+"_db",
			service,
			p.port+faker.Number(0, 9),
			faker.RandomString(p.versions),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteSample writes the static sample plus rows synthetic lines to path.
// A zero seed picks a random one.
func WriteSample(path string, rows int, seed int64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(Sample); err != nil {
		return err
	}
	if err := Synthetic(w, rows, gofakeit.New(seed)); err != nil {
		return err
	}
	return w.Flush()
}

// token squeezes generated text into a single flat-file column.
func token(s string) string {
	return strings.Join(strings.Fields(s), "_")
}
