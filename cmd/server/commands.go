package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"sched-sim/api/rest/routes"
	"sched-sim/config"
	"sched-sim/core/engine"
	"sched-sim/core/feed"
	"sched-sim/core/metrics"
	"sched-sim/core/policy"
	"sched-sim/core/repository"
	"sched-sim/core/spec"
	"sched-sim/storage"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
)

var (
	specPath   string
	runPolicy  string
	exportDir  string
	listenAddr string
)

func init() {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation and print its statistics",
		RunE:  runRun,
	}
	runCmd.Flags().StringVar(&specPath, "spec", "simulation.yaml", "simulation spec file")
	runCmd.Flags().StringVar(&runPolicy, "policy", "", "override the spec's policy (edf|rm|fifo)")
	runCmd.Flags().StringVar(&exportDir, "export", "", "write CSV snapshots into this directory")
	rootCmd.AddCommand(runCmd)

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Run EDF, RM, and FIFO over the same task set and compare",
		RunE:  runCompare,
	}
	compareCmd.Flags().StringVar(&specPath, "spec", "simulation.yaml", "simulation spec file")
	compareCmd.Flags().StringVar(&exportDir, "export", "", "write CSV snapshots into this directory")
	rootCmd.AddCommand(compareCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API",
		RunE:  runServe,
	}
	rootCmd.AddCommand(serveCmd)

	listenCmd := &cobra.Command{
		Use:   "listen",
		Short: "Listen for the live sensor event feed over TCP",
		RunE:  runListen,
	}
	listenCmd.Flags().StringVar(&specPath, "spec", "simulation.yaml", "simulation spec file (task names for the feed)")
	listenCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (default from FEED_ADDR)")
	rootCmd.AddCommand(listenCmd)
}

func loadSpec() (*spec.Simulation, error) {
	data, err := os.ReadFile(specPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec %s: %w", specPath, err)
	}
	return spec.Parse(data)
}

func runRun(cmd *cobra.Command, args []string) error {
	sim, err := loadSpec()
	if err != nil {
		return err
	}
	name := sim.Policy
	if runPolicy != "" {
		name = runPolicy
	}
	pol, err := policy.ForName(name, sim.TaskSet)
	if err != nil {
		return err
	}

	res, err := engine.RunSimulationSeeded(sim.TaskSet, pol, sim.Horizon, sim.Seed)
	if err != nil {
		return err
	}
	printResult(res)

	if exportDir != "" {
		exporter, err := storage.NewExporter(exportDir)
		if err != nil {
			return err
		}
		if err := exporter.WriteRun(res); err != nil {
			return err
		}
		log.Printf("CSV snapshots written to %s", exportDir)
	}
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	sim, err := loadSpec()
	if err != nil {
		return err
	}
	fmt.Printf("Task set utilization: %.4f\n\n", sim.TaskSet.Utilization())

	results, err := engine.Compare(sim.TaskSet, sim.Horizon, sim.Seed)
	if err != nil {
		return err
	}
	for _, res := range results {
		printResult(res)
	}
	printComparison(results)

	if exportDir != "" {
		exporter, err := storage.NewExporter(exportDir)
		if err != nil {
			return err
		}
		for _, res := range results {
			if err := exporter.WriteRun(res); err != nil {
				return err
			}
		}
		if err := exporter.WriteComparison(results); err != nil {
			return err
		}
		log.Printf("CSV snapshots written to %s", exportDir)
	}
	return nil
}

func printResult(res *engine.Result) {
	s := res.Summary
	fmt.Printf("=== %s ===\n", s.Policy)
	fmt.Printf("Total jobs completed: %d\n", s.TotalJobs)
	fmt.Printf("Missed deadlines:     %d\n", s.MissedDeadlines)
	fmt.Printf("Avg response time:    %.2f ms\n", s.AvgResponseTime)
	fmt.Printf("Max response time:    %d ms\n", s.MaxResponseTime)
	fmt.Printf("Min response time:    %d ms\n", s.MinResponseTime)
	fmt.Printf("CPU utilization:      %.2f%%\n", s.CPUUtilization*100)
	for _, ts := range res.TaskStats {
		fmt.Printf("  %-10s %4d jobs, %4d missed, avg RT %7.2f ms, max RT %4d ms\n",
			ts.TaskName, ts.TotalJobs, ts.MissedDeadlines, ts.AvgResponseTime, ts.MaxResponseTime)
	}
	fmt.Println()
}

func printComparison(results []*engine.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "policy\tjobs\tmissed\tavg RT\tmax RT\tutilization")
	for _, res := range results {
		s := res.Summary
		fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%d\t%.2f%%\n",
			s.Policy, s.TotalJobs, s.MissedDeadlines, s.AvgResponseTime, s.MaxResponseTime, s.CPUUtilization*100)
	}
	w.Flush()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Println("Database connected successfully")

	sim, err := loadSpec()
	if err != nil {
		return err
	}
	folder := feed.NewFolder(sim.TaskSet, metrics.NewCollector())

	r := mux.NewRouter()
	routes.SetupRoutes(r, db, folder)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := server.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Println("Server exited")
	return nil
}

func runListen(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	addr := listenAddr
	if addr == "" {
		addr = cfg.FeedAddr
	}

	sim, err := loadSpec()
	if err != nil {
		return err
	}
	collector := metrics.NewCollector()
	folder := feed.NewFolder(sim.TaskSet, collector)
	listener := feed.NewListener(addr, folder)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := listener.ListenAndServe(ctx); err != nil {
		return err
	}

	fmt.Printf("Feed closed: %d jobs folded, %d events dropped\n", len(collector.Records()), folder.Dropped())
	for _, ts := range collector.TaskStatistics() {
		fmt.Printf("  %-10s %4d jobs, %4d missed, avg RT %7.2f ms\n",
			ts.TaskName, ts.TotalJobs, ts.MissedDeadlines, ts.AvgResponseTime)
	}
	return nil
}
