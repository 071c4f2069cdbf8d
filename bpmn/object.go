package bpmn

// DataObject declares a data object of its container. It is not drawn: the
// diagram shows its DataObjectReference.
type DataObject struct {
	BaseElement
	ItemSubjectRef string
}

type DataObjectReference struct {
	BaseElement
	ShapeInfo
	DataObjectRef string
}

type TextAnnotation struct {
	BaseElement
	ShapeInfo
	Text string
}

type Group struct {
	BaseElement
	ShapeInfo
	CategoryValueRef string
}

// Unknown keeps an element whose tag has no model, so that conversion can
// report it instead of dropping it silently.
type Unknown struct {
	BaseElement
	Tag string
}
