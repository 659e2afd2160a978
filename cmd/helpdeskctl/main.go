// helpdeskctl provisions the helpdesk database: schema migrations, the
// bootstrap superuser and the default employee accounts.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/yukikurage/it-helpdesk/internal/config"
	"github.com/yukikurage/it-helpdesk/internal/database"
	"github.com/yukikurage/it-helpdesk/internal/repository"
	"github.com/yukikurage/it-helpdesk/internal/services"
	"github.com/yukikurage/it-helpdesk/pkg/logger"
	"gorm.io/gorm"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type command struct {
	name    string
	summary string
	run     func(db *gorm.DB, args []string, out io.Writer) error
}

var commands = []command{
	{"migrate", "create or update tables and the IT Admin group", runMigrate},
	{"create-admin", "create a superuser from ADMIN_USERNAME/ADMIN_PASSWORD/ADMIN_EMAIL", runCreateAdmin},
	{"seed-employees", "create the default employee accounts emp1..emp10", runSeedEmployees},
	{"grant-admin", "add an existing user to the IT Admin group", runGrantAdmin},
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(out)
		return nil
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == args[0] {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		printUsage(out)
		return fmt.Errorf("unknown command %q", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(&cfg.Logging); err != nil {
		return err
	}
	defer logger.Sync()

	if err := database.Connect(cfg); err != nil {
		return err
	}
	return cmd.run(database.GetDB(), args[1:], out)
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "Usage: helpdeskctl <command> [flags]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(out, "  %-16s %s\n", c.name, c.summary)
	}
}

func runMigrate(db *gorm.DB, args []string, out io.Writer) error {
	flagSet := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if err := database.MigrateDatabase(db); err != nil {
		return err
	}
	fmt.Fprintln(out, "Migrations applied.")
	return nil
}

func runCreateAdmin(db *gorm.DB, args []string, out io.Writer) error {
	var input services.AdminInput

	flagSet := pflag.NewFlagSet("create-admin", pflag.ContinueOnError)
	flagSet.StringVar(&input.Username, "username", os.Getenv("ADMIN_USERNAME"), "superuser name")
	flagSet.StringVar(&input.Password, "password", os.Getenv("ADMIN_PASSWORD"), "superuser password")
	flagSet.StringVar(&input.Email, "email", os.Getenv("ADMIN_EMAIL"), "superuser email")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if input.Username == "" || input.Password == "" {
		fmt.Fprintln(out, "ADMIN_USERNAME or ADMIN_PASSWORD not set; nothing to do.")
		return nil
	}

	created, err := services.NewAccountService(repository.NewUserRepository(db)).CreateAdmin(input)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "Superuser %s created.\n", input.Username)
	} else {
		fmt.Fprintf(out, "Superuser %s already exists.\n", input.Username)
	}
	return nil
}

func runSeedEmployees(db *gorm.DB, args []string, out io.Writer) error {
	flagSet := pflag.NewFlagSet("seed-employees", pflag.ContinueOnError)
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	result, err := services.NewAccountService(repository.NewUserRepository(db)).SeedEmployees(services.DefaultEmployeeAccounts())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Created %d employees: %s\n", len(result.Created), strings.Join(result.Created, ", "))
	fmt.Fprintf(out, "Skipped %d existing: %s\n", len(result.Skipped), strings.Join(result.Skipped, ", "))
	return nil
}

func runGrantAdmin(db *gorm.DB, args []string, out io.Writer) error {
	flagSet := pflag.NewFlagSet("grant-admin", pflag.ContinueOnError)
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("usage: helpdeskctl grant-admin <username>")
	}

	user, err := services.NewAccountService(repository.NewUserRepository(db)).GrantAdmin(flagSet.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s is now an IT administrator.\n", user.Username)
	return nil
}
