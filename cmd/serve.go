package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"deploykit/internal/history"
	"deploykit/internal/server"
	"deploykit/internal/ui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web UI",
	Long: `Serve the deploykit web interface on loopback and open it in the
browser. The UI drives the same analyzer, generator and deploy invoker
as the terminal commands.

Examples:
  deploykit serve
  deploykit serve --port 8080 --no-browser`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		noBrowser, _ := cmd.Flags().GetBool("no-browser")
		styles := ui.NewStyles()

		// Local overrides, e.g. NETLIFY_AUTH_TOKEN for the CLI. Missing
		// file is fine.
		godotenv.Load()

		var store *history.Store
		if path, err := history.DefaultPath(); err == nil {
			if s, err := history.Open(path); err == nil {
				store = s
				defer store.Close()
			} else {
				styles.Warnf("deploy history unavailable: %v", err)
			}
		}

		addr := server.DefaultAddr
		if port != 0 {
			addr = fmt.Sprintf("127.0.0.1:%d", port)
		}

		handlers := server.NewHandlers(viper.GetBool("debug"), store)
		srv := server.New(addr, server.NewMux(handlers))

		if !noBrowser {
			// Fire and forget: give the listener a moment to come up.
			go func() {
				time.Sleep(1500 * time.Millisecond)
				openBrowser("http://" + addr)
			}()
		}

		// Graceful shutdown on interrupt.
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		styles.Infof("web UI on http://%s (ctrl-c to stop)", addr)

		select {
		case err := <-errCh:
			return err
		case <-stop:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (default 5886)")
	serveCmd.Flags().Bool("no-browser", false, "do not open the browser automatically")
	rootCmd.AddCommand(serveCmd)
}
