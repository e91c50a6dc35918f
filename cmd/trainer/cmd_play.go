package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/cipher-nback/internal/logging"
	"github.com/danielpatrickdp/cipher-nback/internal/metrics"
	"github.com/danielpatrickdp/cipher-nback/internal/random"
	"github.com/danielpatrickdp/cipher-nback/internal/session"
)

// #region command

var (
	metricsAddr string
	seed        uint64

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Play an interactive session in the terminal",
		Long: `Each turn shows a cipher puzzle. Answer "m" if its result matches the one
N turns back, "n" otherwise. In repair mode answer "y" or "n" to the shown claim.
"q" quits.`,
		RunE: runPlay,
	}
)

func init() {
	playCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	playCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 uses config, then the clock)")
}

// #endregion command

// #region play

func runPlay(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if addr := firstNonEmpty(metricsAddr, appCfg.Metrics.Addr); addr != "" {
		srv := &http.Server{Addr: addr, Handler: metrics.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", "addr", addr, "err", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		logger.Info("serving metrics", "addr", addr)
	}

	s := seed
	if s == 0 {
		s = appCfg.Session.Seed
	}
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	opts := session.DefaultOptions()
	opts.MatchProbability = appCfg.Session.MatchProbability

	e := session.New(session.Deps{
		Store:   store,
		Source:  random.New(s),
		Logger:  logger,
		Options: opts,
	})

	out := cmd.OutOrStdout()
	done := make(chan struct{})
	defer close(done)
	lines := readLines(cmd.InOrStdin(), done)

	turn, err := e.Start()
	for err == nil {
		renderTurn(out, turn, e.Config().NBackLevel)

		answer, timedOut, quit := awaitAnswer(out, lines, e.Countdown(), turn.Repair)
		if quit {
			break
		}
		var entry logging.LogEntry
		if entry, err = e.SubmitAnswer(answer, timedOut); err != nil {
			break
		}
		renderFeedback(out, entry, e)
		turn, err = e.NextTurn()
	}
	if err != nil {
		return err
	}

	st := e.Stats()
	fmt.Fprintf(out, "\n%d turns, %d judged, accuracy %.0f%%, rating %d\n",
		st.Turns, st.Judged, st.Accuracy*100, e.Rating())
	return nil
}

// readLines feeds stdin lines into a channel closed at EOF or once done is closed.
func readLines(r io.Reader, done <-chan struct{}) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case ch <- strings.TrimSpace(strings.ToLower(sc.Text())):
			case <-done:
				return
			}
		}
	}()
	return ch
}

// awaitAnswer blocks until a valid key, the countdown, or EOF.
func awaitAnswer(out io.Writer, lines <-chan string, cd *session.Countdown, repair bool) (answer, timedOut, quit bool) {
	yes, no := "m", "n"
	if repair {
		yes = "y"
	}
	for {
		fmt.Fprintf(out, "[%s/%s/q] > ", yes, no)
		select {
		case <-cd.Expired():
			fmt.Fprintln(out, "\ntime's up")
			return false, true, false
		case line, ok := <-lines:
			switch {
			case !ok || line == "q":
				return false, false, true
			case line == yes:
				return true, false, false
			case line == no:
				return false, false, false
			}
		}
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// #endregion play
