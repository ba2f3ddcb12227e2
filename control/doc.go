// Package control implements the interactive control layer of the editor:
// text fields, selects, checkboxes, radios, dates and composite forms that
// live as contiguous runs of elements inside the document stream.
//
// # Coordinator
//
// [Control] owns the single active control instance. The host calls
// [Control.InitControl] whenever the caret moves and [Control.DestroyControl]
// when it leaves every control. Keyboard and value operations are routed
// to the active instance:
//
//	ctl := control.New(engine, control.WithLogger(log))
//	ctl.InitControl()
//	idx, err := ctl.SetValue(model.ElementList{{Value: "Ann"}})
//	ctl.Flush() // deliver pending controlChange notifications
//
// # Variants
//
// Every variant implements [Instance]. Option and date variants also
// implement [Selector]; Select and Date implement [Popup] and drive an
// injected [Picker].
//
// # Concept IDs
//
// Controls that represent the same logical field share a concept id.
// [Control.GetValueByConceptID], [Control.SetExtensionByConceptID] and
// [Control.SetPropertiesByConceptID] address controls by concept id across
// header, main and footer, descending into table cells.
// [Control.SetValueByConceptID] addresses a single run by control id.
//
// # Notifications
//
// Activation and destruction schedule one controlChange notification each.
// It is delivered to the listener slot and to the event bus when the host
// drains the deferred queue with [Control.Flush], never inline.
//
// # Rendering Engine
//
// Layout, painting, caret and history live outside this package. They are
// consumed through [Draw] and the small manager interfaces it returns.
package control
