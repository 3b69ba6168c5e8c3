// Command sheetpos is a small operator tool for the spreadsheet-backed POS
// store: list tables, reconcile the product seed, record deletions, verify
// logins. It talks either to a Google spreadsheet (service-account JSON or
// read-only API key) or to a local xlsx file.
//
// Configuration comes from the environment (a .env file is honored):
//
//	SHEETPOS_SPREADSHEET_ID    Google spreadsheet id
//	SHEETPOS_CREDENTIALS_FILE  service-account JSON (enables writes)
//	SHEETPOS_API_KEY           API key (read-only)
//	SHEETPOS_XLSX              local workbook path (overrides the above)
//	SHEETPOS_PRODUCTS_SHEET / SHEETPOS_USERS_SHEET / SHEETPOS_ORDERS_SHEET
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/mkartashov/sheetpos"
	"github.com/mkartashov/sheetpos/gsheets"
	"github.com/mkartashov/sheetpos/xlsx"
)

func main() {
	if err := run(); err != nil {
		slog.Error("sheetpos failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = usage
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if flag.NArg() == 0 {
		usage()
		return fmt.Errorf("missing command")
	}

	ctx := context.Background()
	store, save, err := openStore(ctx, log)
	if err != nil {
		return err
	}

	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "list":
		err = list(ctx, store, args)
	case "seed":
		err = seed(ctx, store, args)
	case "clear-orders":
		err = store.ClearOrders(ctx)
	case "add-product":
		err = addProduct(ctx, store, args)
	case "rm-product":
		err = rmProduct(ctx, store, args)
	case "verify-login":
		err = verifyLogin(ctx, store, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		return err
	}
	if save != nil {
		return save()
	}
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: sheetpos [-v] <command> [args]

commands:
  list <products|orders|users> [--filter EXPR]
  seed <seed.json>
  clear-orders
  add-product <name> <volume> <price>
  rm-product <name> [volume]
  verify-login <login> <password>`)
}

// openStore builds the store over the configured backend. Returns a save
// hook for file-backed workbooks.
func openStore(ctx context.Context, log *slog.Logger) (*sheetpos.Store, func() error, error) {
	cfg := sheetpos.Config{
		ProductsSheet: os.Getenv("SHEETPOS_PRODUCTS_SHEET"),
		UsersSheet:    os.Getenv("SHEETPOS_USERS_SHEET"),
		OrdersSheet:   os.Getenv("SHEETPOS_ORDERS_SHEET"),
	}

	if path := os.Getenv("SHEETPOS_XLSX"); path != "" {
		wb, err := xlsx.Open(path)
		if err != nil {
			return nil, nil, err
		}
		store, err := sheetpos.New(wb, cfg, sheetpos.WithLogger(log))
		if err != nil {
			return nil, nil, err
		}
		return store, wb.Save, nil
	}

	id := os.Getenv("SHEETPOS_SPREADSHEET_ID")
	var opts []gsheets.Option
	if credsPath := os.Getenv("SHEETPOS_CREDENTIALS_FILE"); credsPath != "" {
		creds, err := os.ReadFile(credsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("read credentials: %w", err)
		}
		opts = append(opts, gsheets.WithServiceAccount(creds))
	} else if key := os.Getenv("SHEETPOS_API_KEY"); key != "" {
		log.Warn("no service account configured, store is read-only")
		opts = append(opts, gsheets.WithAPIKey(key))
	}

	client, err := gsheets.New(ctx, id, opts...)
	if err != nil {
		return nil, nil, err
	}
	store, err := sheetpos.New(client, cfg, sheetpos.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	return store, nil, nil
}

func list(ctx context.Context, store *sheetpos.Store, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	filter := fs.String("filter", "", "boolean expression, e.g. 'price > 100'")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("list: expected one table name")
	}

	switch fs.Arg(0) {
	case "products":
		items, err := store.Products(ctx)
		if err != nil {
			return err
		}
		if *filter != "" {
			if items, err = sheetpos.FilterProducts(items, *filter); err != nil {
				return err
			}
		}
		for _, p := range items {
			price := "-"
			if p.Price != nil {
				price = fmt.Sprintf("%.2f", *p.Price)
			}
			fmt.Printf("%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Volume, price)
		}
	case "orders":
		items, err := store.Orders(ctx)
		if err != nil {
			return err
		}
		if *filter != "" {
			if items, err = sheetpos.FilterOrders(items, *filter); err != nil {
				return err
			}
		}
		for _, o := range items {
			fmt.Printf("%s\t%s\t%.2f\t%s\t%d items\n", o.ID, o.Timestamp, o.TotalPrice, o.PaymentMethod, len(o.Items))
		}
	case "users":
		items, err := store.Users(ctx)
		if err != nil {
			return err
		}
		for _, u := range items {
			fmt.Printf("%s\t%s\t%s %s\t%s\n", u.ID, u.Login, u.FirstName, u.LastName, u.Position)
		}
	default:
		return fmt.Errorf("list: unknown table %q", fs.Arg(0))
	}
	return nil
}

func seed(ctx context.Context, store *sheetpos.Store, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("seed: expected a seed file")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read seed: %w", err)
	}
	var items []struct {
		Name     string   `json:"name"`
		Volume   string   `json:"volume"`
		Price    *float64 `json:"price"`
		ImageURL string   `json:"imageUrl"`
		AIHint   string   `json:"aiHint"`
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("parse seed: %w", err)
	}
	seedList := make([]sheetpos.Product, len(items))
	for i, it := range items {
		seedList[i] = sheetpos.Product{
			Name: it.Name, Volume: it.Volume, Price: it.Price,
			ImageURL: it.ImageURL, AIHint: it.AIHint,
		}
	}
	report, err := store.SyncProducts(ctx, seedList)
	if err != nil {
		return err
	}
	fmt.Printf("added %d, skipped %d\n", report.Added, report.Skipped)
	return nil
}

func addProduct(ctx context.Context, store *sheetpos.Store, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("add-product: expected name, volume, price")
	}
	var price float64
	if _, err := fmt.Sscanf(args[2], "%f", &price); err != nil {
		return fmt.Errorf("add-product: bad price %q", args[2])
	}
	return store.AddProduct(ctx, sheetpos.Product{Name: args[0], Volume: args[1], Price: &price})
}

func rmProduct(ctx context.Context, store *sheetpos.Store, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("rm-product: expected name and optional volume")
	}
	volume := ""
	if len(args) == 2 {
		volume = args[1]
	}
	return store.DeleteProduct(ctx, args[0], volume)
}

func verifyLogin(ctx context.Context, store *sheetpos.Store, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("verify-login: expected login and password")
	}
	u, err := store.UserByLogin(ctx, args[0])
	if err != nil {
		return err
	}
	ok, scheme := u.CheckPassword(args[1])
	if scheme == sheetpos.HashPlaintext {
		slog.Warn("user row still stores a plaintext password", "login", u.Login)
	}
	if !ok {
		return fmt.Errorf("password mismatch for %q", u.Login)
	}
	fmt.Printf("ok (%s)\n", scheme)
	return nil
}
