package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. The best score is shared by all
players using the same backend.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

Examples:
  snake ssh                            # Listen on :2222 with auto-generated key
  snake ssh --addr :2323               # Listen on port 2323
  snake ssh --host-key ./my_host_key   # Use specific host key

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	Run:  runSSH,
}

func init() {
	sshCmd.Flags().StringVar(&flagSSHAddr, "addr", "", "SSH server address (default from config, :2222)")
	sshCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	sshCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config, 10m)")
}

func runSSH(cmd *cobra.Command, _ []string) {
	cfg, logger, scores := setup(cmd, "ssh")
	defer scores.Close()

	if flagSSHAddr != "" {
		cfg.SSH.Addr = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.SSH.HostKey = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.SSH.IdleTimeout = flagIdleTimeout
	}

	server, err := tui.NewSSHServer(cfg.SSH, cfg.Speed, cfg.Seed, scores, logger)
	if err != nil {
		scores.Close()
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("waiting for players", "address", server.Addr())
	if err := server.ListenAndServe(ctx); err != nil {
		scores.Close()
		fatal(err)
	}
}
