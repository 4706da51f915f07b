package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	"gorm.io/gorm"

	"csr_backend/internals/configs"
	database "csr_backend/internals/databases"
	proposalService "csr_backend/internals/features/csr/proposals/service"
	"csr_backend/internals/seeds"
)

var commands = []subcommands.Command{
	&migrateCmd{},
	&seedCmd{},
	&createAdminCmd{},
	&reportCmd{},
}

func fail(format string, a ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", a...)
	return subcommands.ExitFailure
}

func openDB() (*configs.Config, *gorm.DB, error) {
	cfg, err := configs.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

/* ===============================
   migrate
=================================*/

type migrateCmd struct {
	down bool
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply (or roll back one step of) the database migrations" }
func (*migrateCmd) Usage() string {
	return `csrctl migrate [-down]

  Applies every pending migration for DB_DRIVER. With -down, rolls back the last one.
`
}

func (c *migrateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.down, "down", false, "roll back the last migration")
}

func (c *migrateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := configs.Load()
	if err != nil {
		return fail("%v", err)
	}
	if c.down {
		err = database.MigrateDown(cfg)
	} else {
		err = database.Migrate(cfg)
	}
	if err != nil {
		return fail("%v", err)
	}
	return subcommands.ExitSuccess
}

/* ===============================
   seed
=================================*/

type seedCmd struct {
	email, password string
	programs        bool
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "insert the default admin and categories" }
func (*seedCmd) Usage() string {
	return `csrctl seed [-admin-email <email>] [-admin-password <password>] [-programs]

  Idempotent: existing rows are left untouched.
`
}

func (c *seedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "admin-email", seeds.DefaultAdminEmail, "admin email")
	f.StringVar(&c.password, "admin-password", seeds.DefaultAdminPassword, "admin password")
	f.BoolVar(&c.programs, "programs", false, "also insert sample programs")
}

func (c *seedCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, db, err := openDB()
	if err != nil {
		return fail("%v", err)
	}
	defer database.Close(db)

	if err := seeds.RunAll(ctx, db, seeds.Options{
		AdminEmail:    c.email,
		AdminPassword: c.password,
		WithPrograms:  c.programs,
	}); err != nil {
		return fail("%v", err)
	}
	return subcommands.ExitSuccess
}

/* ===============================
   create-admin
=================================*/

type createAdminCmd struct {
	email, password, name string
}

func (*createAdminCmd) Name() string     { return "create-admin" }
func (*createAdminCmd) Synopsis() string { return "create an admin account" }
func (*createAdminCmd) Usage() string {
	return `csrctl create-admin -email <email> -password <password> [-name <name>]
`
}

func (c *createAdminCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "admin email (required)")
	f.StringVar(&c.password, "password", "", "admin password (required, min 6 chars)")
	f.StringVar(&c.name, "name", "", "display name")
}

func (c *createAdminCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" || len(c.password) < 6 {
		fmt.Fprintln(os.Stderr, "Error: -email and -password (min 6 chars) are required")
		return subcommands.ExitUsageError
	}
	_, db, err := openDB()
	if err != nil {
		return fail("%v", err)
	}
	defer database.Close(db)

	u, created, err := seeds.SeedAdmin(ctx, db, c.email, c.password, c.name)
	if err != nil {
		return fail("%v", err)
	}
	if !created {
		return fail("user %s already exists (id=%d, role=%s)", u.Email, u.ID, u.Role)
	}
	fmt.Printf("admin %s created (id=%d)\n", u.Email, u.ID)
	return subcommands.ExitSuccess
}

/* ===============================
   report
=================================*/

type reportCmd struct {
	month, year int
	out         string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "write the proposal report (HTML or Markdown)" }
func (*reportCmd) Usage() string {
	return `csrctl report [-year <yyyy>] [-month <m>] [-out <file>]

  Without -year the report covers every proposal. -month needs -year.
  The output format follows the -out extension: .md for Markdown, anything else HTML.
  Without -out the HTML is written to stdout.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.month, "month", 0, "month 1-12")
	f.IntVar(&c.year, "year", 0, "year, e.g. 2025")
	f.StringVar(&c.out, "out", "", "output file")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var month, year string
	if c.year > 0 {
		year = strconv.Itoa(c.year)
	}
	if c.month > 0 {
		month = strconv.Itoa(c.month)
	}
	filter, err := proposalService.ResolvePeriod(month, year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	_, db, err := openDB()
	if err != nil {
		return fail("%v", err)
	}
	defer database.Close(db)

	report := proposalService.NewReportService(db, proposalService.NewStatsService(db))
	var doc []byte
	if strings.EqualFold(filepath.Ext(c.out), ".md") {
		doc, err = report.Markdown(ctx, filter)
	} else {
		doc, err = report.Render(ctx, filter)
	}
	if err != nil {
		return fail("%v", err)
	}

	if c.out == "" {
		_, _ = os.Stdout.Write(doc)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.out, doc, 0o644); err != nil {
		return fail("%v", err)
	}
	fmt.Printf("report %s written to %s\n", filter.Label(), c.out)
	return subcommands.ExitSuccess
}
