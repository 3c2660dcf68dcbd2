package consultant

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/consultant/usecases"
	"github.com/parlourcover/parlour/internal/infrastructure/auth"
	"github.com/parlourcover/parlour/internal/infrastructure/repository"
	"github.com/parlourcover/parlour/internal/interfaces/cli/bootstrap"
	"github.com/parlourcover/parlour/internal/shared/authorization"
)

var (
	readPasswordFunc = term.ReadPassword

	env        string
	configPath string
	email      string
	firstName  string
	lastName   string
)

// NewCommand returns the "consultant" command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consultant",
		Short: "Consultant account administration",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(newCreateSuperuserCommand())
	return cmd
}

func newCreateSuperuserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-superuser",
		Short: "Create a superuser. The password is prompted, or read from PARLOUR_SUPERUSER_PASSWORD.",
		RunE:  runCreateSuperuser,
	}

	cmd.Flags().StringVar(&email, "email", "", "Login email (required)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name (required)")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")

	return cmd
}

func runCreateSuperuser(cmd *cobra.Command, args []string) error {
	password, err := readPassword()
	if err != nil {
		return err
	}

	rt, err := bootstrap.Open(env, configPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	uc := usecases.NewCreateConsultantUseCase(
		repository.NewConsultantRepository(rt.DB, rt.Log),
		repository.NewParlourRepository(rt.DB, rt.Log),
		auth.NewBcryptPasswordHasher(rt.Config.Auth.Password.BcryptCost),
		rt.Log,
	)

	created, err := uc.Execute(context.Background(), usecases.CreateConsultantCommand{
		Actor:     common.Actor{Role: authorization.RoleSuperuser},
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
		Role:      string(authorization.RoleSuperuser),
	})
	if err != nil {
		return fmt.Errorf("failed to create superuser: %w", err)
	}

	fmt.Printf("Superuser %s created with ID %d\n", created.Email, created.ID)
	return nil
}

func readPassword() (string, error) {
	if pwd := os.Getenv("PARLOUR_SUPERUSER_PASSWORD"); pwd != "" {
		return pwd, nil
	}

	fmt.Print("Enter password: ")
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(pwd) == 0 {
		return "", errors.New("password must not be empty")
	}
	return string(pwd), nil
}
