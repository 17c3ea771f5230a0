package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/evelink/evelink/pkg/eveng"
	"github.com/evelink/evelink/pkg/linkmgr"
	"github.com/evelink/evelink/pkg/settings"
)

// resolveHost returns the EVE-NG server from: --host > EVE_HOST > settings > prompt.
func resolveHost() (string, error) {
	if flagHost != "" {
		return flagHost, nil
	}
	if v := os.Getenv("EVE_HOST"); v != "" {
		return v, nil
	}
	if s, err := settings.Load(); err == nil && s.Host != "" {
		return s.Host, nil
	}
	return promptLine("EVE-NG server URL: ")
}

// resolveUsername returns the username from: --username > EVE_USERNAME > settings > prompt.
func resolveUsername() (string, error) {
	if flagUsername != "" {
		return flagUsername, nil
	}
	if v := os.Getenv("EVE_USERNAME"); v != "" {
		return v, nil
	}
	if s, err := settings.Load(); err == nil && s.Username != "" {
		return s.Username, nil
	}
	return promptLine("EVE-NG username: ")
}

// resolvePassword returns the password from: --password > EVE_PASSWORD > no-echo prompt.
func resolvePassword() (string, error) {
	if flagPassword != "" {
		return flagPassword, nil
	}
	if v := os.Getenv("EVE_PASSWORD"); v != "" {
		return v, nil
	}
	fmt.Fprint(os.Stderr, "EVE-NG password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}

// requireLab returns the lab path from: --lab > EVE_LAB > settings > error.
func requireLab() (string, error) {
	if flagLab != "" {
		return flagLab, nil
	}
	if v := os.Getenv("EVE_LAB"); v != "" {
		return v, nil
	}
	if s, err := settings.Load(); err == nil && s.Lab != "" {
		return s.Lab, nil
	}
	return "", fmt.Errorf("lab path required: use -L <lab>, set EVE_LAB, or run 'evelink settings set lab <lab>'")
}

func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// connectAPI logs into the EVE-NG API. Authentication failure is fatal to
// the run; cobra propagates the error and the process exits nonzero.
func connectAPI(ctx context.Context) (*eveng.Client, error) {
	host, err := resolveHost()
	if err != nil {
		return nil, err
	}
	username, err := resolveUsername()
	if err != nil {
		return nil, err
	}
	password, err := resolvePassword()
	if err != nil {
		return nil, err
	}

	client, err := eveng.NewClient(eveng.Config{
		Host:     host,
		Username: username,
		Password: password,
		Insecure: flagInsecure,
	}, logger)
	if err != nil {
		return nil, err
	}
	if err := client.Login(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

// newRunner returns the wrapper command runner: local exec by default, SSH
// to --host when --ssh is set. The returned closer is a no-op for the
// local runner.
func newRunner() (linkmgr.Runner, func() error, error) {
	if !flagSSH {
		return linkmgr.ExecRunner{}, func() error { return nil }, nil
	}

	host, err := resolveHost()
	if err != nil {
		return nil, nil, err
	}
	username, err := resolveUsername()
	if err != nil {
		return nil, nil, err
	}
	password, err := resolvePassword()
	if err != nil {
		return nil, nil, err
	}

	// Strip any URL scheme for the SSH dial.
	if idx := strings.Index(host, "://"); idx >= 0 {
		host = host[idx+3:]
	}
	runner, err := linkmgr.NewSSHRunner(host, username, password)
	if err != nil {
		return nil, nil, err
	}
	return runner, runner.Close, nil
}

// newExecutor builds the transition executor for the given lab.
func newExecutor(runner linkmgr.Runner, lab string) *linkmgr.Executor {
	wrapper := ""
	if s, err := settings.Load(); err == nil {
		wrapper = s.WrapperPath
	}
	return linkmgr.NewExecutor(runner, wrapper, eveng.FullPath(lab), logger)
}

// printResult prints a Result with a pass/fail marker. Failed results come
// back as errors wrapping util.ErrTransitionRejected so the process exits
// nonzero and callers can test the failure category.
func printResult(res linkmgr.Result) error {
	if res.OK {
		fmt.Printf("%s %s\n", green("✓"), res.Message)
		return nil
	}
	fmt.Printf("%s %s\n", red("✗"), res.Message)
	return linkmgr.Rejected(res)
}
