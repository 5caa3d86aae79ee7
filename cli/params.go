package cli

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/pitchguard/param"
)

// ParamsListAction prints every parameter with its stored or default value.
func ParamsListAction(c *cli.Context) (err error) {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, store.Close())
	}()

	stored, err := store.Load(c.Context)
	if err != nil {
		return err
	}
	cfg, err := param.Decode(stored)
	if err != nil {
		return err
	}
	current := param.Encode(cfg)

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Name", "Value", "Default", "Range", "Units", "Description"})
	for _, p := range param.Table {
		value := formatValue(current[p.Name])
		if _, ok := stored[p.Name]; !ok {
			value += " (default)"
		}
		t.AppendRow(table.Row{
			p.Name,
			value,
			formatValue(p.Default),
			fmt.Sprintf("%s to %s", formatValue(p.Min), formatValue(p.Max)),
			p.Units,
			p.DisplayName,
		})
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

// ParamsSetAction stores one parameter value.
func ParamsSetAction(c *cli.Context) (err error) {
	if c.Args().Len() != 2 {
		return errors.New("expected NAME VALUE")
	}
	name := c.Args().Get(0)
	value, err := strconv.ParseFloat(c.Args().Get(1), 64)
	if err != nil {
		return errors.Wrapf(err, "value for %s", name)
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, store.Close())
	}()
	if err := store.Set(c.Context, name, value); err != nil {
		return err
	}
	printf(c.App.Writer, "%s set to %s", name, formatValue(value))
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
