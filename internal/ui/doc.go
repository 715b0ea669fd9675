// Package ui implements interactive terminal questionnaires using bubbletea's Elm architecture.
//
// Two forms are provided:
//  1. [NewProfileForm] : the full listening-habits questionnaire (age, hours per day,
//     yes/no habits, twelve genre-frequency selects, mood levels, preferred BPM)
//  2. [NewMoodForm] : a short mood check-in (openness plus four 1-10 levels)
//
// [FormModel] implements bubbletea's standard Init/Update/View pattern, presenting one
// question at a time. Numeric answers use charmbracelet/bubbles' textinput with range
// validation; select answers cycle fixed options with the arrow keys. A completed form
// converts to a [models.Profile] or [models.MoodUpdate] for the CLI to persist.
package ui
