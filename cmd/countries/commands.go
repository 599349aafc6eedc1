package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	appcountries "country-directory-service/internal/app/countries"
	domaincountries "country-directory-service/internal/domain/countries"
)

func newListCmd(opts *options) *cobra.Command {
	var criteria appcountries.Criteria
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List countries, optionally filtered and sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := appcountries.ParseSort(criteria.Sort); !ok {
				return fmt.Errorf("invalid --sort %q (expected name, population or area)", criteria.Sort)
			}
			return opts.run(cmd, func(ctx context.Context, svc *appcountries.Service) error {
				list, err := svc.Search(ctx, criteria)
				if err != nil {
					return err
				}
				if opts.json {
					return writeJSON(opts.out, list)
				}
				return writeTable(opts.out, list)
			})
		},
	}
	cmd.Flags().StringVar(&criteria.Search, "search", "", "Case-insensitive name substring")
	cmd.Flags().StringVar(&criteria.Region, "region", "", "Region name, e.g. Europe")
	cmd.Flags().StringVar(&criteria.Sort, "sort", appcountries.SortName, "Sort by name, population or area")
	return cmd
}

func newGetCmd(opts *options) *cobra.Command {
	var byName bool
	cmd := &cobra.Command{
		Use:   "get CODE",
		Short: "Show one country by alpha-2/alpha-3 code (or by name with --name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, svc *appcountries.Service) error {
				var (
					country domaincountries.Country
					err     error
				)
				if byName {
					country, err = svc.CountryByName(ctx, args[0])
				} else {
					country, err = svc.CountryByCode(ctx, args[0])
				}
				if errors.Is(err, appcountries.ErrNotFound) {
					return fmt.Errorf("no country matches %q", args[0])
				}
				if err != nil {
					return err
				}
				if opts.json {
					return writeJSON(opts.out, country)
				}
				return writeDetail(opts.out, country)
			})
		},
	}
	cmd.Flags().BoolVar(&byName, "name", false, "Treat the argument as a country name")
	return cmd
}

func newRegionsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the distinct regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, svc *appcountries.Service) error {
				regions, err := svc.Regions(ctx)
				if err != nil {
					return err
				}
				if opts.json {
					return writeJSON(opts.out, regions)
				}
				for _, r := range regions {
					if _, err := fmt.Fprintln(opts.out, r); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

// run applies the command timeout and hands a fresh service to fn.
func (o *options) run(cmd *cobra.Command, fn func(ctx context.Context, svc *appcountries.Service) error) error {
	baseCtx := cmd.Context()
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	ctx, cancel := context.WithTimeout(baseCtx, o.timeout)
	defer cancel()

	svc, err := o.service()
	if err != nil {
		return err
	}
	return fn(ctx, svc)
}
