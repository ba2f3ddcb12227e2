package control

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tsawler/formctl/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func validatePayload(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return nil
}

// GetValueOption selects the runs of a concept
type GetValueOption struct {
	ConceptID string `json:"conceptId" validate:"required"`
}

// ValueResult is the value of one run. Value is the text for text and date
// controls and the raw comma separated code for option controls; InnerText
// is the option labels joined.
type ValueResult struct {
	Control   *model.Control `json:"control"`
	Zone      model.Zone     `json:"zone"`
	Value     string         `json:"value"`
	InnerText string         `json:"innerText"`
}

// SetValueOption addresses a run by control id
type SetValueOption struct {
	ControlID string `json:"controlId" validate:"required"`
	Value     string `json:"value"`
}

// SetExtensionOption replaces the extension of every run of a concept
type SetExtensionOption struct {
	ConceptID string `json:"conceptId" validate:"required"`
	Extension any    `json:"extension"`
}

// SetPropertiesOption patches every run of a concept
type SetPropertiesOption struct {
	ConceptID  string           `json:"conceptId" validate:"required"`
	Properties model.Properties `json:"properties"`
}

// GetValueByConceptID returns the value of every text, date and option run
// of a concept in header, main and footer order, including runs in table
// cells.
func (c *Control) GetValueByConceptID(opt GetValueOption) ([]ValueResult, error) {
	if err := validatePayload(opt); err != nil {
		return nil, err
	}
	var results []ValueResult
	for _, z := range model.Zones {
		list := c.draw.ZoneElementList(z)
		if list == nil {
			continue
		}
		results = collectValues(*list, z, opt.ConceptID, 0, results)
	}
	return results, nil
}

func collectValues(list model.ElementList, zone model.Zone, conceptID string, depth int, results []ValueResult) []ValueResult {
	for i := 0; i < len(list); {
		e := list[i]
		if e.IsTable() && depth < MaxTableDepth {
			for _, row := range e.Rows {
				for _, cell := range row.Cells {
					results = collectValues(cell.Value, zone, conceptID, depth+1, results)
				}
			}
		}
		if e.Control == nil || e.ControlID == "" || e.Control.ConceptID != conceptID {
			i++
			continue
		}
		ctl := e.Control
		j := i
		var sb strings.Builder
		for j < len(list) && list[j].ControlID == e.ControlID {
			if list[j].ControlComponent == model.ComponentValue {
				sb.WriteString(list[j].Value)
			}
			j++
		}
		switch {
		case ctl.Type.IsTextual():
			results = append(results, ValueResult{
				Control:   ctl.Clone(),
				Zone:      zone,
				Value:     sb.String(),
				InnerText: sb.String(),
			})
		case ctl.Type.HasOptions():
			results = append(results, ValueResult{
				Control:   ctl.Clone(),
				Zone:      zone,
				Value:     ctl.Code,
				InnerText: ctl.InnerText(),
			})
		}
		i = j
	}
	return results
}

// SetValueByConceptID rewrites the value of every run with the given
// control id, in every zone and table cell, ignoring the disabled rule.
// Option controls take codes, date controls a formatted date. The editor
// renders once when a run took the value; the boolean reports that.
func (c *Control) SetValueByConceptID(opt SetValueOption) (bool, error) {
	if err := validatePayload(opt); err != nil {
		return false, err
	}
	if c.draw.IsReadonly() {
		return false, nil
	}
	c.DestroyControl()
	updated := false
	for _, z := range model.Zones {
		if list := c.draw.ZoneElementList(z); list != nil && c.setRunValues(list, opt, 0) {
			updated = true
		}
	}
	if !updated {
		return false, nil
	}
	c.draw.Render(RenderOptions{IsCompute: true, IsSubmitHistory: true})
	c.log.Info(logModule, "control value set", map[string]interface{}{"controlId": opt.ControlID})
	c.checkRuns("setValueByConceptId")
	return true, nil
}

func (c *Control) setRunValues(list *model.ElementList, opt SetValueOption, depth int) bool {
	updated := false
	for i := 0; i < len(*list); {
		e := (*list)[i]
		if e.IsTable() && depth < MaxTableDepth {
			for _, row := range e.Rows {
				for _, cell := range row.Cells {
					if c.setRunValues(&cell.Value, opt, depth+1) {
						updated = true
					}
				}
			}
		}
		if e.ControlID != opt.ControlID || e.Control == nil {
			i++
			continue
		}
		if span, ok := spanAt(*list, i); ok {
			ctx := &Context{
				Range:       &model.Range{StartIndex: span.PrefixEnd, EndIndex: span.PostfixStart - 1},
				ElementList: list,
			}
			if applyValue(c.newInstance(e), opt.Value, ctx, &RuleOption{IgnoreDisabledRule: true}) >= 0 {
				updated = true
			} else {
				c.log.Debug(logModule, "control rejected value", map[string]interface{}{
					"controlId": e.ControlID,
					"value":     opt.Value,
				})
			}
		} else {
			c.log.Warn(logModule, "control run has no prefix", map[string]interface{}{"controlId": e.ControlID})
		}
		for i < len(*list) && (*list)[i].ControlID == opt.ControlID {
			i++
		}
	}
	return updated
}

// applyValue sets value through the variant's own entry point.
func applyValue(inst Instance, value string, ctx *Context, opts *RuleOption) int {
	if s, ok := inst.(Selector); ok {
		if value == "" {
			return s.ClearSelect(ctx, opts)
		}
		return s.SetSelect(value, ctx, opts)
	}
	if value == "" {
		if vc, ok := inst.(valueClearer); ok {
			return vc.ClearValue(ctx, opts)
		}
	}
	return inst.SetValue(splitValue(value), ctx, opts)
}

// SetExtensionByConceptID replaces the extension of every run of a
// concept and reports whether any run matched.
func (c *Control) SetExtensionByConceptID(opt SetExtensionOption) (bool, error) {
	if err := validatePayload(opt); err != nil {
		return false, err
	}
	if c.draw.IsReadonly() {
		return false, nil
	}
	updated := false
	c.walkZones(func(_ model.ElementList, _ int, e *model.Element) {
		if e.Control != nil && e.Control.ConceptID == opt.ConceptID {
			e.Control.Extension = opt.Extension
			updated = true
		}
	})
	return updated, nil
}

// SetPropertiesByConceptID patches the descriptor of every run of a
// concept, keeping its value, then normalizes every zone and renders.
func (c *Control) SetPropertiesByConceptID(opt SetPropertiesOption) (bool, error) {
	if err := validatePayload(opt); err != nil {
		return false, err
	}
	if c.draw.IsReadonly() {
		return false, nil
	}
	patched := make(map[*model.Control]*model.Control)
	c.walkZones(func(_ model.ElementList, _ int, e *model.Element) {
		if e.Control == nil {
			return
		}
		if n, ok := patched[e.Control]; ok {
			e.Control = n
			return
		}
		if e.Control.ConceptID != opt.ConceptID {
			return
		}
		n := opt.Properties.Apply(e.Control)
		patched[e.Control] = n
		e.Control = n
	})
	if len(patched) == 0 {
		return false, nil
	}

	c.DestroyControl()
	doc := model.NewDocument()
	for _, z := range model.Zones {
		list := c.draw.ZoneElementList(z)
		if list == nil {
			continue
		}
		zipped := model.Zip(*list)
		model.Format(&zipped, c.opts.Format)
		*doc.Zone(z) = zipped
	}
	c.draw.SetEditorData(doc)
	c.RebuildGroups()
	c.draw.Render(RenderOptions{IsCompute: true, IsSubmitHistory: true})
	c.log.Info(logModule, "control properties set", map[string]interface{}{
		"conceptId": opt.ConceptID,
		"controls":  len(patched),
	})
	c.checkRuns("setPropertiesByConceptId")
	return true, nil
}

// List returns one compact control element per run across every zone,
// table cells included.
func (c *Control) List() model.ElementList {
	var elements model.ElementList
	c.walkZones(func(_ model.ElementList, _ int, e *model.Element) {
		if e.ControlID != "" {
			elements = append(elements, e)
		}
	})
	return model.Zip(elements)
}

// SetControlGroup makes the given controls one group and returns its id,
// generating one when groupID is empty. Former members of the group that
// are not listed leave it.
func (c *Control) SetControlGroup(controlIDs []string, groupID string) (string, error) {
	members := make(map[string]bool)
	for _, id := range controlIDs {
		if id != "" {
			members[id] = true
		}
	}
	if len(members) < 2 {
		return "", fmt.Errorf("%w: a group needs at least two controls", ErrInvalidPayload)
	}
	found := make(map[string]bool)
	c.walkZones(func(_ model.ElementList, _ int, e *model.Element) {
		if members[e.ControlID] {
			found[e.ControlID] = true
		}
	})
	for id := range members {
		if !found[id] {
			return "", fmt.Errorf("%w: %s", ErrUnknownControl, id)
		}
	}
	if groupID == "" {
		groupID = uuid.NewString()
	}
	c.walkZones(func(_ model.ElementList, _ int, e *model.Element) {
		switch {
		case members[e.ControlID]:
			e.ControlGroupID = groupID
		case e.ControlGroupID == groupID:
			e.ControlGroupID = ""
		}
	})
	c.RebuildGroups()
	return groupID, nil
}

func (c *Control) walkZones(fn func(list model.ElementList, index int, e *model.Element)) {
	for _, z := range model.Zones {
		if list := c.draw.ZoneElementList(z); list != nil {
			walkElements(*list, 0, fn)
		}
	}
}
