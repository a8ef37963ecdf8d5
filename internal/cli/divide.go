package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mr-Dark-debug/gf2div/internal/database"
	"github.com/Mr-Dark-debug/gf2div/internal/report"
	"github.com/Mr-Dark-debug/gf2div/internal/validation"
	"github.com/Mr-Dark-debug/gf2div/pkg/gf2"
)

// NewDivideCommand creates the divide command.
func NewDivideCommand() *cobra.Command {
	var (
		format string
		save   bool
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "divide DIVIDEND DIVISOR",
		Short: "Divide two binary polynomials and show every step",
		Long: `Runs GF(2) long division of DIVIDEND by DIVISOR and prints the quotient,
the remainder and each XOR step. The divisor must start with 1.`,
		Example: `  # The classic CRC example
  gf2div divide 1100110000 11001

  # Markdown report, recorded in history
  gf2div divide 1101011011 10011 --format markdown --save`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			dividend, divisor, err := validation.Parse(args[0], args[1])
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd, "divide")

			t := gf2.Generate(dividend, divisor)
			logger.Debug("generated trace", "steps", t.Len(), "degenerate", t.Degenerate)

			p := report.NewPrinter(cmd.OutOrStdout(), useColor(cmd), cfg.History.TimeFormat)
			if err := p.Division(t, f); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}

			if !save {
				return nil
			}
			if dbPath == "" {
				dbPath = cfg.DBPath
			}
			store, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			d := database.NewDivision(t, database.SourceCLI)
			if err := store.InsertDivision(d); err != nil {
				return fmt.Errorf("saving division: %w", err)
			}
			logger.Info("saved division", "id", d.ID, "db", store.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, markdown, json")
	cmd.Flags().BoolVarP(&save, "save", "s", false, "Record the division in history")
	cmd.Flags().StringVar(&dbPath, "db", "", "History database (default from config)")

	return cmd
}

// NewMultiplyCommand creates the multiply command.
func NewMultiplyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "multiply P1 P2",
		Short: "Multiply two binary polynomials",
		Example: `  gf2div multiply 11 11
  101`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := validation.ValidateBits("p1", args[0])
			if err != nil {
				return err
			}
			b, err := validation.ValidateBits("p2", args[1])
			if err != nil {
				return err
			}

			product := gf2.Multiply(a, b)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, product)
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				fmt.Fprintf(out, "(%s)(%s) = %s\n",
					report.Polynomial(a), report.Polynomial(b), report.Polynomial(product))
			}
			return nil
		},
	}
}

// NewCRCCommand creates the crc command.
func NewCRCCommand() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "crc MESSAGE GENERATOR",
		Short: "Compute or verify a CRC",
		Long: `Computes the CRC of MESSAGE for GENERATOR: the remainder of MESSAGE
followed by len(GENERATOR)-1 zeros, divided by GENERATOR. The codeword
is MESSAGE with the CRC appended.

With --verify, MESSAGE is taken as a received codeword and checked.`,
		Example: `  gf2div crc 11010011101100 1011
  gf2div crc 11010011101100100 1011 --verify`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := validation.ValidateBits("message", args[0])
			if err != nil {
				return err
			}
			generator, err := validation.ValidateBits("generator", args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if verify {
				ok, err := gf2.Verify(message, generator)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("codeword %s does not check against %s", message, generator)
				}
				fmt.Fprintln(out, "ok")
				return nil
			}

			crc, err := gf2.CRC(message, generator)
			if err != nil {
				return err
			}
			codeword, err := gf2.Codeword(message, generator)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "crc       %s\n", crc)
			fmt.Fprintf(out, "codeword  %s\n", codeword)
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Check MESSAGE as a codeword")
	return cmd
}
