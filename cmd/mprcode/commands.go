package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"moneroreq/internal/domain/request"
)

func runEncode(args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	var version string
	var asJSON bool

	fs := pflag.NewFlagSet("mprcode encode", pflag.ContinueOnError)
	common.add(fs)

	// Flag defaults come from the codec so "encode" alone documents them.
	defaults := paymentDefaults()
	req := defaults
	fs.StringVar(&req.CustomLabel, "label", defaults.CustomLabel, "custom label")
	fs.StringVar(&req.SellersWallet, "wallet", "", "seller wallet address (required)")
	fs.StringVar(&req.Currency, "currency", request.CurrencyXMR, "currency: XMR or USD")
	fs.StringVar(&req.Amount, "amount", "", "amount, digits with optional commas and periods (required)")
	fs.StringVar(&req.PaymentID, "payment-id", "", "16 hex characters (random when empty)")
	fs.StringVar(&req.StartDate, "start-date", "", "first due date, yyyy-MM-ddTHH:mm:ss.SSSZ (now when empty)")
	fs.IntVar(&req.DaysPerBillingCycle, "days", defaults.DaysPerBillingCycle, "days per billing cycle")
	fs.IntVar(&req.NumberOfPayments, "payments", defaults.NumberOfPayments, "number of payments, 0 for open-ended")
	fs.StringVar(&req.ChangeIndicatorURL, "url", "", "change indicator URL")
	fs.StringVar(&version, "version", "", "wire version (default: latest)")
	fs.BoolVar(&asJSON, "json", false, "print the code together with the encoded request as JSON")

	if help, err := parseFlags(fs, args, stdout); help || err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return usageError("unexpected argument: %s", fs.Arg(0))
	}

	log := common.logger(stderr)
	defer log.Sync()

	code, err := common.codec().Build(&req, version)
	if err != nil {
		log.Warn("encode failed", zap.Error(err))
		return codecError(err)
	}
	log.Debug("encoded", zap.String("payment_id", req.PaymentID), zap.Int("code_length", len(code)))

	if asJSON {
		return writeJSON(stdout, struct {
			Code    string                  `json:"code"`
			Request *request.PaymentRequest `json:"payment_request"`
		}{code, &req})
	}
	_, err = fmt.Fprintln(stdout, code)
	return err
}

func runDecode(args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	var schedule int

	fs := pflag.NewFlagSet("mprcode decode", pflag.ContinueOnError)
	common.add(fs)
	fs.IntVar(&schedule, "schedule", 0, "also print the first N due dates")

	if help, err := parseFlags(fs, args, stdout); help || err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageError("decode takes exactly one code, got %d arguments", fs.NArg())
	}

	log := common.logger(stderr)
	defer log.Sync()

	req, err := common.codec().Parse(fs.Arg(0))
	if err != nil {
		log.Warn("decode failed", zap.Error(err))
		return codecError(err)
	}
	if err := printRequest(stdout, req); err != nil {
		return err
	}
	if schedule <= 0 {
		return nil
	}

	due, err := req.Schedule(schedule)
	if err != nil {
		return fmt.Errorf("start_date %q is not a valid date", req.StartDate)
	}
	for i, d := range due {
		fmt.Fprintf(stdout, "%d\t%s\n", i+1, request.FormatStartDate(d))
	}
	return nil
}

// demoWallet is a well-formed standard address used only for the demo.
const demoWallet = "4At3X5rvVypTofgmueN9s9QtrzdRe5BueFrskAZi17BoYbhzysozzoMFB6zWnTKdGC6AxEAbEE5czFR3hbEEJbsm4hCeX2S"

func runDemo(args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	fs := pflag.NewFlagSet("mprcode demo", pflag.ContinueOnError)
	common.add(fs)
	if help, err := parseFlags(fs, args, stdout); help || err != nil {
		return err
	}

	codec := common.codec()
	req := codec.NewRequest()
	req.SellersWallet = demoWallet
	req.Currency = request.CurrencyUSD
	req.Amount = "25.99"

	code, err := codec.Build(req, "")
	if err != nil {
		return codecError(err)
	}
	fmt.Fprintf(stdout, "Encoded payment request:\n%s\n\n", code)

	decoded, err := codec.Parse(code)
	if err != nil {
		return codecError(err)
	}
	fmt.Fprintln(stdout, "Decoded payment request:")
	return printRequest(stdout, decoded)
}

func paymentDefaults() request.PaymentRequest {
	var common commonFlags
	return *common.codec().NewRequest()
}
