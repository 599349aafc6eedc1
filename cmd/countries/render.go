package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	domaincountries "country-directory-service/internal/domain/countries"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, list []domaincountries.Country) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCODE\tCAPITAL\tREGION\tPOPULATION")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", c.Name, c.Code, c.Capital, c.Region, c.Population)
	}
	return tw.Flush()
}

func writeDetail(w io.Writer, c domaincountries.Country) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Name", c.Name},
		{"Code", c.Code},
		{"Capital", c.Capital},
		{"Region", c.Region},
		{"Subregion", c.Subregion},
		{"Population", fmt.Sprintf("%d", c.Population)},
		{"Area", fmt.Sprintf("%g km²", c.Area)},
		{"Languages", strings.Join(c.Languages, ", ")},
		{"Currency", c.Currency},
		{"Timezone", c.PrimaryTimezone()},
		{"Borders", strings.Join(c.Borders, ", ")},
		{"Flag", c.FlagURL},
	}
	if c.HasCoordinates() {
		rows = append(rows, [2]string{"Coordinates", fmt.Sprintf("%g, %g", c.Coordinates.Latitude, c.Coordinates.Longitude)})
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}
