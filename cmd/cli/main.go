package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	postgresRepo "github.com/umair/tradeledger/internal/adapter/repository/postgres"
	"github.com/umair/tradeledger/internal/domain"
	"github.com/umair/tradeledger/internal/infrastructure/config"
	"github.com/umair/tradeledger/internal/infrastructure/logger"
	"github.com/umair/tradeledger/internal/infrastructure/postgres"
	"github.com/umair/tradeledger/internal/usecase"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tradeledger",
		Short: "TradeLedger admin tool",
		Long:  `Administrative commands for the TradeLedger back office: migrations, company accounts, balance replays and consistency checks.`,
	}

	rootCmd.AddCommand(migrateCmd(), companyCmd(), recalcCmd(), consistencyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// deps bundles everything a command needs after connecting.
type deps struct {
	pool    *pgxpool.Pool
	recalc  *usecase.RecalcUseCase
	check   *usecase.ConsistencyUseCase
	company *usecase.CompanyUseCase
}

func connect(ctx context.Context) (*deps, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		return nil, nil, err
	}

	log := logger.New(logger.Config{Level: "warn", Format: "console"})

	txManager := postgresRepo.NewTxManager(pool)
	partyRepo := postgresRepo.NewPartyRepository(pool)
	txRepo := postgresRepo.NewTransactionRepository(pool)
	bankRepo := postgresRepo.NewBankRepository(pool)
	bankTxRepo := postgresRepo.NewBankTransactionRepository(pool)
	companyRepo := postgresRepo.NewCompanyRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	recalcUC := usecase.NewRecalcUseCase(txManager, partyRepo, txRepo, bankRepo, bankTxRepo, retrier)

	return &deps{
		pool:    pool,
		recalc:  recalcUC,
		check:   usecase.NewConsistencyUseCase(txManager, partyRepo, txRepo, recalcUC),
		company: usecase.NewCompanyUseCase(companyRepo, idGen),
	}, pool.Close, nil
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	var path string
	up := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Level: "info", Format: "console"})
			return postgres.RunMigrations(log, cfg.DatabaseURL, path)
		},
	}
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Level: "info", Format: "console"})
			return postgres.RunMigrationsDown(log, cfg.DatabaseURL, path)
		},
	}
	cmd.PersistentFlags().StringVar(&path, "path", "migrations", "Migrations directory")
	cmd.AddCommand(up, down)
	return cmd
}

func companyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Company account management",
	}

	var username, email, shopName, shopNameUrdu, password string
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a company account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, closeFn, err := connect(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			company, err := d.company.CreateCompany(ctx, usecase.CreateCompanyInput{
				Username:     username,
				Email:        email,
				ShopName:     shopName,
				ShopNameUrdu: shopNameUrdu,
				Password:     password,
			})
			if err != nil {
				return err
			}

			fmt.Printf("company created: %s (%s)\n", company.ID, company.Username)
			return nil
		},
	}
	create.Flags().StringVar(&username, "username", "", "Login username")
	create.Flags().StringVar(&email, "email", "", "Contact email")
	create.Flags().StringVar(&shopName, "shop-name", "", "Shop name")
	create.Flags().StringVar(&shopNameUrdu, "shop-name-urdu", "", "Shop name in Urdu")
	create.Flags().StringVar(&password, "password", "", "Login password")
	create.MarkFlagRequired("username")
	create.MarkFlagRequired("email")
	create.MarkFlagRequired("shop-name")
	create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}

func recalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recalc",
		Short: "Replay ledgers and rebuild balances",
	}

	party := &cobra.Command{
		Use:   "party <company-id> <party-id>",
		Short: "Replay one party's ledger",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, closeFn, err := connect(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			balance, err := d.recalc.RecalcParty(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("party %s balance: %s\n", args[1], balance.StringFixed(2))
			return nil
		},
	}

	all := &cobra.Command{
		Use:   "all <company-id>",
		Short: "Replay every party ledger of a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, closeFn, err := connect(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := d.recalc.RecalcAllParties(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("replayed %d parties\n", n)
			return nil
		},
	}

	var bankID, paymentMethod string
	bank := &cobra.Command{
		Use:   "bank <company-id>",
		Short: "Replay one mirror account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, closeFn, err := connect(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			account := domain.BankAccountRef{BankID: bankID, PaymentMethod: paymentMethod}
			balance, err := d.recalc.RecalcBankAccount(ctx, args[0], account)
			if err != nil {
				return err
			}
			fmt.Printf("account balance: %s\n", balance.StringFixed(2))
			return nil
		},
	}
	bank.Flags().StringVar(&bankID, "bank-id", "", "Bank ID")
	bank.Flags().StringVar(&paymentMethod, "payment-method", "", "Payment method name")

	cmd.AddCommand(party, all, bank)
	return cmd
}

func consistencyCmd() *cobra.Command {
	var repair bool
	cmd := &cobra.Command{
		Use:   "consistency <company-id>",
		Short: "Compare cached balances against full replays",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, closeFn, err := connect(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			report, err := d.check.CheckCompany(ctx, args[0], repair)
			if err != nil {
				return err
			}

			fmt.Print(formatReport(report, repair))
			if len(report.Discrepancies) > 0 && !repair {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&repair, "repair", false, "Replay inconsistent parties to fix cached balances")
	return cmd
}

// formatReport renders a consistency report for the terminal.
func formatReport(report *usecase.ConsistencyReport, repaired bool) string {
	out := fmt.Sprintf("checked %d parties, %d consistent\n", report.TotalParties, report.ConsistentParties)
	for _, d := range report.Discrepancies {
		out += fmt.Sprintf("  %s (%s): recorded %s, calculated %s, diff %s\n",
			truncate(d.PartyName, 30), d.PartyID,
			d.RecordedBalance.StringFixed(2),
			d.CalculatedBalance.StringFixed(2),
			d.Difference.StringFixed(2))
	}
	if len(report.Discrepancies) > 0 && repaired {
		out += fmt.Sprintf("repaired %d parties\n", len(report.Discrepancies))
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
