package chart

import "github.com/matzehuels/barchart/pkg/scale"

// TooltipOffset is the horizontal gap between a bar and its tooltip.
const TooltipOffset = 10.0

// Tooltip describes the hover box of a bar. Negative bars grow to the left,
// so their tooltip opens to the east; all others open to the west.
type Tooltip struct {
	Visible    bool    `json:"visible"`
	Key        string  `json:"key,omitempty"`
	Value      float64 `json:"value,omitempty"`
	Direction  string  `json:"direction,omitempty"`
	OffsetX    float64 `json:"offset_x,omitempty"`
	KeyLabel   string  `json:"key_label,omitempty"`
	ValueLabel string  `json:"value_label,omitempty"`
}

func newTooltip(key string, value float64, keyLabel, valueLabel string) Tooltip {
	t := Tooltip{Visible: true, Key: key, Value: value, Direction: "w", OffsetX: -TooltipOffset, KeyLabel: keyLabel, ValueLabel: valueLabel}
	if value < 0 {
		t.Direction, t.OffsetX = "e", TooltipOffset
	}
	return t
}

// FormattedValue returns the value with seven significant digits.
func (t Tooltip) FormattedValue() string { return scale.FormatValue(t.Value) }

// Rows returns the caption/value pairs of the tooltip table.
func (t Tooltip) Rows() [][2]string {
	if !t.Visible {
		return nil
	}
	return [][2]string{{t.KeyLabel, t.Key}, {t.ValueLabel, t.FormattedValue()}}
}
