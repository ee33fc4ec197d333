package main

// Mode is the editor's input state.
type Mode int

const (
	ModeNormal Mode = iota
	ModePalette
	ModeEditing
	ModeImport
	ModeMove
	ModeExport
	ModeSaveAs
	ModeLayerName
	ModeOpen
	ModeConfirm
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmClear
	ConfirmDeleteLayer
	ConfirmDeleteDesign
)

const (
	statusLines     = 1
	fastMoveSpeed   = 2
	defaultBaseName = "wireframe"
	paletteWidth    = 36
)
