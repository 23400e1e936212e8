// voicectl is an operator tool for checking the classifier configuration and
// the local command parser without running the server.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/carson-networks/voice-ledger/internal/classifier"
	"github.com/carson-networks/voice-ledger/internal/config"
	"github.com/carson-networks/voice-ledger/internal/normalizer"
	"github.com/carson-networks/voice-ledger/internal/phrases"
	"github.com/carson-networks/voice-ledger/internal/simulator"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.WithError(err).Error("voicectl")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "voicectl",
		Short:         "Inspect the voice ledger classifier and parser",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newModelsCommand(), newParseCommand(), newEMICommand())
	return root
}

func newModelsCommand() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the remote models the configured key can use",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.ProcessEnvironmentVariables()
			if err != nil {
				return err
			}
			client := classifier.NewHTTPClient(env.LLMTimeout)
			models, err := classifier.ListModels(cmd.Context(), client, env.LLMBaseURL, env.LLMAPIKey)
			if err != nil {
				return err
			}
			return printModels(cmd.OutOrStdout(), models, all)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include models that cannot generate content")
	return cmd
}

func printModels(w io.Writer, models []classifier.Model, all bool) error {
	for _, m := range models {
		if !all && !m.SupportsGenerate() {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", m.Name, m.DisplayName); err != nil {
			return err
		}
	}
	return nil
}

type parseResult struct {
	Text    string                  `json:"text"`
	Intent  normalizer.CoarseIntent `json:"coarse_intent"`
	Number  *float64                `json:"number"`
	Command any                     `json:"command,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

func newParseCommand() *cobra.Command {
	var tag string
	cmd := &cobra.Command{
		Use:   "parse <text>",
		Short: "Run the local normalizer on a phrase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, ok := phrases.Parse(tag)
			if !ok {
				return fmt.Errorf("unsupported language %q", tag)
			}
			return writeJSON(cmd.OutOrStdout(), parse(args[0], lang))
		},
	}
	cmd.Flags().StringVarP(&tag, "language", "l", string(phrases.Default), "language tag")
	return cmd
}

func parse(text string, lang phrases.Language) parseResult {
	res := parseResult{Text: text, Intent: normalizer.ClassifyIntent(text, lang)}
	if n, ok := normalizer.ParseNumber(text, lang); ok {
		res.Number = &n
	}
	structured, err := normalizer.BuildCommand(text, lang)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Command = structured
	return res
}

func newEMICommand() *cobra.Command {
	var terms simulator.Terms
	cmd := &cobra.Command{
		Use:   "emi",
		Short: "Compute the monthly installment for loan terms",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := terms.Validate(); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n",
				simulator.EMI(terms.Principal, terms.AnnualRate, terms.TenureMonths))
			return err
		},
	}
	cmd.Flags().Float64Var(&terms.Principal, "principal", 0, "loan principal")
	cmd.Flags().Float64Var(&terms.AnnualRate, "rate", simulator.DefaultRate, "annual rate in percent")
	cmd.Flags().IntVar(&terms.TenureMonths, "tenure", simulator.DefaultTenureMonths, "tenure in months")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
