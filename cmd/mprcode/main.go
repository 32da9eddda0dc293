// mprcode encodes and decodes Monero payment request codes from the
// command line.
//
//	mprcode encode --wallet 4... --currency XMR --amount 0.5
//	mprcode decode monero-request:1:H4sI...
//	mprcode demo
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"moneroreq/internal/domain/request"
	domainErrors "moneroreq/internal/errors"
	"moneroreq/internal/logger"
	"moneroreq/internal/paymentcode"
)

// exitUsage is returned for bad invocations, exitInvalid for codes or
// requests the codec rejects.
const (
	exitUsage   = 2
	exitInvalid = 3
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

func usageError(format string, args ...interface{}) error {
	return &exitError{code: exitUsage, err: fmt.Errorf(format, args...)}
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var coder interface{ ExitCode() int }
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return usageError("missing command")
	}

	switch args[0] {
	case "encode":
		return runEncode(args[1:], stdout, stderr)
	case "decode":
		return runDecode(args[1:], stdout, stderr)
	case "demo":
		return runDemo(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stderr)
		return usageError("unknown command %q", args[0])
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: mprcode <command> [flags]

Commands:
  encode   build a payment request code from flags
  decode   print the payment request carried by a code
  demo     encode a sample request and decode it back

Run "mprcode <command> --help" for the flags of a command.
`)
}

// commonFlags are shared by every command.
type commonFlags struct {
	verbose         bool
	allowSubaddress bool
	maxPayloadBytes int64
}

func (f *commonFlags) add(fs *pflag.FlagSet) {
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log codec activity to stderr")
	fs.BoolVar(&f.allowSubaddress, "allow-subaddress", false, "accept subaddresses (prefix 8) as the seller wallet")
	fs.Int64Var(&f.maxPayloadBytes, "max-payload-bytes", 0, "decompressed payload ceiling (0 keeps the default)")
}

func (f *commonFlags) codec() *paymentcode.Codec {
	cfg := paymentcode.DefaultConfig()
	cfg.WalletPolicy.AllowSubaddress = f.allowSubaddress
	if f.maxPayloadBytes > 0 {
		cfg.MaxPayloadBytes = f.maxPayloadBytes
	}
	return paymentcode.New(cfg)
}

func (f *commonFlags) logger(stderr io.Writer) *zap.Logger {
	if !f.verbose {
		return zap.NewNop()
	}
	l, err := logger.New("development")
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return zap.NewNop()
	}
	return l
}

func parseFlags(fs *pflag.FlagSet, args []string, stdout io.Writer) (bool, error) {
	fs.SetOutput(stdout)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return true, nil
		}
		return false, &exitError{code: exitUsage, err: err}
	}
	return false, nil
}

// codecError tags rejections from the codec with exitInvalid.
func codecError(err error) error {
	if domainErrors.CodeOf(err) != "" {
		return &exitError{code: exitInvalid, err: err}
	}
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRequest(w io.Writer, req *request.PaymentRequest) error {
	return writeJSON(w, req)
}
