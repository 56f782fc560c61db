package cmd

import (
	"fmt"

	"github.com/lepinkainen/tablestore/internal/config"
	"github.com/lepinkainen/tablestore/internal/render"
)

// CreateCmd represents the create command
type CreateCmd struct {
	Table string `arg:"" help:"Table name (letters, digits and underscores)"`
}

func (c *CreateCmd) Run(app *appContext) error {
	return app.store.CreateTable(c.Table, config.Notify)
}

// DropCmd represents the drop command
type DropCmd struct {
	Table string `arg:"" help:"Table name"`
}

func (d *DropCmd) Run(app *appContext) error {
	return app.store.DropTable(d.Table, config.Notify)
}

// InsertCmd represents the insert command
type InsertCmd struct {
	Table       string `arg:"" help:"Table name"`
	Name        string `arg:"" help:"Value for the NAME column"`
	Description string `arg:"" optional:"" help:"Value for the DESCRIPTION column"`
}

func (i *InsertCmd) Run(app *appContext) error {
	_, err := app.store.InsertRow(i.Table, i.Name, i.Description)
	return err
}

// DeleteCmd represents the delete command
type DeleteCmd struct {
	Table string `arg:"" help:"Table name"`
	ID    int64  `arg:"" help:"Row id as shown by list"`
}

func (d *DeleteCmd) Run(app *appContext) error {
	return app.store.DeleteRowByID(d.Table, d.ID)
}

// ListCmd represents the list command
type ListCmd struct {
	Table string `arg:"" help:"Table name"`
}

func (l *ListCmd) Run(app *appContext) error {
	rows, err := app.store.AllRows(l.Table)
	if err != nil {
		return err
	}
	return render.Rows(app.out, rows, config.OutputFormat)
}

// RandomCmd represents the random command
type RandomCmd struct {
	Table string `arg:"" help:"Table name"`
}

func (r *RandomCmd) Run(app *appContext) error {
	row, found, err := app.store.RandomRow(r.Table)
	if err != nil {
		return err
	}
	if !found {
		return render.Rows(app.out, nil, config.OutputFormat)
	}
	return render.Row(app.out, row, config.OutputFormat)
}

// EmptyCmd represents the empty command
type EmptyCmd struct {
	Table string `arg:"" help:"Table name"`
}

func (e *EmptyCmd) Run(app *appContext) error {
	empty, err := app.store.IsEmpty(e.Table)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(app.out, empty)
	return err
}
