package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"mystore-backend/internal/config"
	"mystore-backend/internal/domain"
	"mystore-backend/internal/notify"
	"mystore-backend/internal/repository"
	"mystore-backend/internal/usecase"
)

const usageText = `Usage: admincli <command> [flags]

Commands:
  list                         list all sellers
  pending                      list sellers awaiting review
  show         -id N           show one seller
  set-status   -id N -status Approved|Rejected
  create       -name -email -password -store [-description] [-status]
  update       -id N -name -store [-description]
  delete       -id N           delete a seller and all their data
  flush-emails                 send queued approval/rejection emails
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := config.ConnectDB(ctx, cfg)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer db.Close()

	sellerRepo := repository.NewSellerRepo(db)
	emailLogRepo := repository.NewEmailLogRepo(db)
	mailer := notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	notifier := notify.NewNotifier(mailer, emailLogRepo, notify.Templates{
		DashboardURL: cfg.DashboardURL,
		LoginURL:     cfg.LoginURL,
	})
	admin := usecase.NewAdminUsecase(sellerRepo, notifier)

	if err := run(ctx, admin, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func run(ctx context.Context, admin *usecase.AdminUsecase, command string, args []string) error {
	switch command {
	case "list":
		sellers, err := admin.ListSellers(ctx)
		if err != nil {
			return err
		}
		printSellers("ALL SELLERS", sellers)
		return nil

	case "pending":
		sellers, err := admin.PendingSellers(ctx)
		if err != nil {
			return err
		}
		printSellers("PENDING SELLERS (Awaiting Approval)", sellers)
		return nil

	case "show":
		fs := flag.NewFlagSet("show", flag.ExitOnError)
		id := fs.Int64("id", 0, "seller id")
		fs.Parse(args)

		s, err := admin.SellerDetails(ctx, *id)
		if err != nil {
			return err
		}
		printSeller(s)
		return nil

	case "set-status":
		fs := flag.NewFlagSet("set-status", flag.ExitOnError)
		id := fs.Int64("id", 0, "seller id")
		status := fs.String("status", "", "Approved or Rejected")
		fs.Parse(args)

		s, err := admin.SetStatus(ctx, *id, *status)
		if err != nil {
			return err
		}
		fmt.Printf("Seller %d (%s) is now %s\n", s.ID, s.Email, s.Status)

		sent, err := admin.FlushStatusEmails(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Status emails sent: %d\n", sent)
		return nil

	case "create":
		fs := flag.NewFlagSet("create", flag.ExitOnError)
		name := fs.String("name", "", "full name")
		email := fs.String("email", "", "email")
		password := fs.String("password", "", "password")
		store := fs.String("store", "", "store name")
		description := fs.String("description", "", "store description")
		status := fs.String("status", domain.SellerApproved, "initial status")
		fs.Parse(args)

		s, err := admin.CreateSeller(ctx, *name, *email, *password, *store, *description, *status)
		if err != nil {
			return err
		}
		fmt.Printf("Seller created: ID=%d Email=%s Status=%s\n", s.ID, s.Email, s.Status)
		return nil

	case "update":
		fs := flag.NewFlagSet("update", flag.ExitOnError)
		id := fs.Int64("id", 0, "seller id")
		name := fs.String("name", "", "full name")
		store := fs.String("store", "", "store name")
		description := fs.String("description", "", "store description")
		fs.Parse(args)

		if err := admin.UpdateSeller(ctx, *id, *name, *store, *description); err != nil {
			return err
		}
		fmt.Printf("Seller %d updated\n", *id)
		return nil

	case "delete":
		fs := flag.NewFlagSet("delete", flag.ExitOnError)
		id := fs.Int64("id", 0, "seller id")
		fs.Parse(args)

		if err := admin.DeleteSeller(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("Seller %d and all their data deleted\n", *id)
		return nil

	case "flush-emails":
		sent, err := admin.FlushStatusEmails(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Status emails sent: %d\n", sent)
		return nil

	default:
		fmt.Fprint(os.Stderr, usageText)
		return fmt.Errorf("unknown command %q", command)
	}
}

func printSellers(title string, sellers []domain.Seller) {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println(title)
	fmt.Println(strings.Repeat("=", 80))
	if len(sellers) == 0 {
		fmt.Println("No sellers found")
		return
	}
	for i := range sellers {
		printSeller(&sellers[i])
	}
}

func printSeller(s *domain.Seller) {
	fmt.Printf("\nID: %d | Status: %s\n", s.ID, s.Status)
	fmt.Printf("Name: %s\n", s.FullName)
	fmt.Printf("Email: %s\n", s.Email)
	fmt.Printf("Store: %s\n", s.StoreName)
	if s.StoreDescription != "" {
		fmt.Printf("Description: %s\n", s.StoreDescription)
	}
	fmt.Printf("Registered: %s\n", s.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Println(strings.Repeat("-", 80))
}
