// Package tui provides terminal widgets for editing settings fields and a
// form builder that lays them out group by group.
//
// Every widget implements bind.Widget, so a form wires each widget to its
// field through a bind.Bridge and edits flow through the settings model's
// validation and persistence. Widgets render onto a tcell.Screen and are
// driven by tcell key events; tests use tcell's simulation screen.
package tui
