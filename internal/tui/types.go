package tui

type stage int

const (
	stageInput stage = iota
	stageArmed
	stageDelivering
	stageDone
)

const heroTagline = "Copy a verse, switch windows, and it pastes itself."

const (
	refPlaceholder = "2:255 or 5:6-10"

	minContentWidth          = 40
	contentHorizontalPadding = 4
	payloadPreviewLimit      = 360
)
