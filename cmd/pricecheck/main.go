package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tiendascan/pkg/alerts"
	"tiendascan/pkg/catalog"
	"tiendascan/pkg/config"
	"tiendascan/pkg/indicator"
	"tiendascan/pkg/logger"
	"tiendascan/pkg/purchase"
	"tiendascan/pkg/shopclient"
)

const requestTimeout = 30 * time.Second

func main() {
	var (
		configPath  = flag.String("config", "", "path to the configuration file")
		term        = flag.String("producto", "", "product name to search for")
		branchID    = flag.Uint("sucursal", 0, "branch to buy from (0 picks the cheapest offer)")
		quantity    = flag.Int("cantidad", 0, "quantity to buy (0 skips the purchase flow)")
		watchAlerts = flag.Bool("alertas", false, "follow the live alert stream instead of searching")
	)
	flag.Parse()

	if *term == "" && !*watchAlerts {
		fmt.Fprintln(os.Stderr, "Uso: pricecheck -producto <nombre> [-sucursal <id>] [-cantidad <n>] | pricecheck -alertas")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.InitLogger(true, cfg.App.LogFile, "warn"); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	if *watchAlerts {
		watchAlertStream(cfg)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	searcher := shopclient.NewSearcher(
		shopclient.NewClient(cfg.GetSearchConfig()),
		indicator.NewClient(cfg.GetIndicatorConfig()),
	)

	result, err := searcher.PerformSearch(ctx, *term)
	if err != nil {
		log.Fatalf("La búsqueda falló: %v", err)
	}

	if result.RateNotice != "" {
		fmt.Println(result.RateNotice)
	}

	if len(result.Groups) == 0 {
		fmt.Printf("Sin resultados para %q\n", *term)
		return
	}

	printGroups(result)
	for _, alert := range result.Alerts {
		fmt.Println(alert.Message)
	}

	if *quantity <= 0 {
		return
	}

	offer, ok := pickOffer(result.Groups, *branchID)
	if !ok {
		log.Fatalf("No hay oferta con stock para comprar (sucursal %d)", *branchID)
	}

	runPurchase(cfg, offer, *quantity, result.Rate)
}

// watchAlertStream follows the server's /stream endpoint and prints each
// alert once, until interrupted.
func watchAlertStream(cfg *config.Config) {
	streamURL := strings.TrimRight(cfg.GetSearchConfig().BaseURL, "/") + "/stream"
	fmt.Printf("Escuchando alertas en %s (Ctrl+C para salir)\n", streamURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := alerts.NewConsumer(streamURL)
	go consumer.Run(ctx)

	seen := make(map[string]struct{})
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, alert := range consumer.Active() {
				key := alert.ShownAt.String() + alert.Message
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				fmt.Printf("[%s] %s\n", alert.ShownAt.Format("15:04:05"), alert.Message)
			}
		}
	}
}

func printGroups(result *shopclient.Result) {
	for _, group := range result.Groups {
		fmt.Printf("\n%s (producto %d)\n", group.ProductName, group.ProductID)
		if usd, ok := catalog.MinPriceUSD(group, result.Rate); ok {
			fmt.Printf("  Mejor precio: $%d CLP (USD %.2f)\n", group.MinPriceCLP, usd)
		} else {
			fmt.Printf("  Mejor precio: $%d CLP\n", group.MinPriceCLP)
		}
		for _, branch := range group.Branches {
			fmt.Printf("  - %s: $%d CLP, stock %d\n",
				branch.BranchName, branch.PriceCLP, branch.StockAvailable)
		}
	}
}

// pickOffer chooses the offer to buy. With no branch given it takes the
// cheapest in-stock offer across all groups.
func pickOffer(groups []catalog.ProductGroup, branchID uint) (catalog.SearchRecord, bool) {
	var best catalog.SearchRecord
	found := false

	for _, group := range groups {
		for _, branch := range group.Branches {
			if branch.StockAvailable <= 0 {
				continue
			}
			if branchID != 0 && branch.BranchID != branchID {
				continue
			}
			if !found || branch.PriceCLP < best.PriceCLP {
				best = branch
				found = true
			}
		}
	}

	return best, found
}

func runPurchase(cfg *config.Config, offer catalog.SearchRecord, quantity int, rate *float64) {
	selection := purchase.NewSelection()
	if err := selection.Select(offer); err != nil {
		log.Fatalf("No se pudo seleccionar la oferta: %v", err)
	}

	total, err := selection.ComputeTotal(quantity, rate)
	if err != nil {
		log.Fatalf("No se pudo calcular el total: %v", err)
	}

	fmt.Printf("\nCompra: %d x %s en %s\n", quantity, offer.ProductName, offer.BranchName)
	fmt.Printf("Total: $%d CLP\n", total.TotalCLP)
	if total.TotalUSD != nil {
		fmt.Printf("Total: USD %.2f\n", *total.TotalUSD)
	}

	checkoutURL, err := selection.Confirm(cfg.GetCheckoutConfig().PaymentURL)
	if err != nil {
		log.Fatalf("No se pudo confirmar la compra: %v", err)
	}
	fmt.Printf("Pagar en: %s\n", checkoutURL)
}
