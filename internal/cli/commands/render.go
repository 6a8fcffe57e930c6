package commands

import (
	"fmt"
	"time"

	"github.com/leapstack-labs/minisql/internal/cli/output"
	"github.com/leapstack-labs/minisql/pkg/engine"
	"github.com/leapstack-labs/minisql/pkg/lint"
)

// renderValidation writes a validation report.
func renderValidation(r *output.Renderer, res *lint.Result) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(res)
	}

	if res.Valid {
		r.Success("Valid")
	} else {
		r.Error("Invalid")
	}
	for _, msg := range res.Errors {
		r.Error(msg)
	}
	for _, msg := range res.Warnings {
		r.Warning(msg)
	}
	for _, msg := range res.Suggestions {
		r.Hint(msg)
	}
	return nil
}

// renderResult writes the outcome of one executed statement.
func renderResult(r *output.Renderer, res *engine.Result) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(res)
	}

	if !res.Success {
		r.Error(res.Error)
		return nil
	}
	if res.Validation != nil {
		for _, msg := range res.Validation.Warnings {
			r.Warning(msg)
		}
	}
	if res.Columns != nil {
		rows := make([][]string, len(res.Rows))
		for i, row := range res.Rows {
			cells := make([]string, len(row))
			for j, v := range row {
				cells[j] = output.FormatValue(v)
			}
			rows[i] = cells
		}
		r.Table(res.Columns, rows)
		r.Muted(fmt.Sprintf("%s (%s)", res.Message, res.ExecutionTime.Round(10*time.Microsecond)))
		return nil
	}
	r.Success(res.Message)
	return nil
}

// renderPlan writes an execution plan.
func renderPlan(r *output.Renderer, plan *engine.Plan) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(plan)
	}

	r.Header("Query Plan")
	pairs := [][2]string{{"Operation", plan.Operation}}
	if plan.Table != "" {
		pairs = append(pairs, [2]string{"Table", plan.Table})
	}
	pairs = append(pairs,
		[2]string{"Estimated rows", fmt.Sprint(plan.EstimatedRows)},
		[2]string{"Cost", fmt.Sprint(plan.Cost)},
	)
	r.KeyValue(pairs)
	for _, d := range plan.Details {
		r.Muted("  " + d)
	}
	return nil
}
