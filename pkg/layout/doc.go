// Package layout computes chart margins and group anchors from the container
// size and the label content.
//
// The drawing area is split into a label column on the left and the bar
// area on the right, below a strip holding the top axis:
//
//	             MarginLabelX                  MarginChartX
//	            +------------+--------------------------------------+
//	MarginLabelY|            |               axis                   |
//	            +------------+--------------------------------------+
//	            |   labels   |               bars                   |
//	MarginChartY|            |                                      |
//	            +------------+--------------------------------------+
//
// The label column is either a fixed fraction of the width
// ([StrategyFraction]) or the measured width of the widest label
// ([StrategyMeasured], the default). Layouts must be recomputed whenever the
// container is resized or the labels change.
package layout
