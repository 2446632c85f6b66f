package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/dodge/ecs"
)

// FieldInfo describes one exported field of a component struct.
type FieldInfo struct {
	Name  string
	Index int
	Kind  reflect.Kind
}

var fieldCache = map[reflect.Type][]FieldInfo{}

// componentFields lists the exported fields of t. Non-struct components
// yield a single unnamed entry for the value itself. Results are cached;
// ImGui runs on one goroutine so the cache is unguarded.
func componentFields(t reflect.Type) []FieldInfo {
	if fields, ok := fieldCache[t]; ok {
		return fields
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fields = append(fields, FieldInfo{Name: field.Name, Index: i, Kind: field.Type.Kind()})
		}
	} else {
		fields = []FieldInfo{{Name: "", Index: -1, Kind: t.Kind()}}
	}

	fieldCache[t] = fields
	return fields
}

// fieldValue returns the settable value behind component, a pointer to a
// component, for field.
func fieldValue(component any, field FieldInfo) reflect.Value {
	val := reflect.ValueOf(component).Elem()
	if field.Index < 0 {
		return val
	}
	return val.Field(field.Index)
}

// EntityInspector lists entities by archetype and edits the selected entity's
// numeric and boolean component fields in place.
type EntityInspector struct {
	PageSize int

	selected ecs.EntityId
	filter   string
}

func NewEntityInspector(pageSize int) *EntityInspector {
	return &EntityInspector{PageSize: pageSize}
}

func (ei *EntityInspector) Selected() ecs.EntityId {
	return ei.selected
}

func (ei *EntityInspector) Render(storage *ecs.Storage) {
	imgui.SetNextWindowPosV(imgui.NewVec2(400, 100), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 420), imgui.CondOnce)
	if !imgui.BeginV("Entity Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##filter", "Filter components...", &ei.filter, imgui.InputTextFlagsNone, nil)

	for _, archetype := range storage.Archetypes() {
		names := typeNames(archetype.Types())
		if ei.filter != "" && !strings.Contains(strings.ToLower(names), strings.ToLower(ei.filter)) {
			continue
		}
		label := fmt.Sprintf("0x%08X [%s] (%d)###arch%d", archetype.ID(), names, archetype.Count(), archetype.ID())
		if !imgui.TreeNodeStr(label) {
			continue
		}

		shown := 0
		for id := range archetype.Iter() {
			if shown == ei.PageSize {
				imgui.Text(fmt.Sprintf("... %d more", archetype.Count()-shown))
				break
			}
			if imgui.SelectableBoolV(fmt.Sprintf("%d", id), ei.selected == id, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
				ei.selected = id
			}
			shown++
		}
		imgui.TreePop()
	}

	imgui.Separator()
	ei.renderSelected(storage)
	imgui.End()
}

func (ei *EntityInspector) renderSelected(storage *ecs.Storage) {
	if ei.selected == 0 || !storage.Alive(ei.selected) {
		imgui.Text("No entity selected")
		return
	}

	archetype := storage.GetArchetypeById(ei.selected.ArchetypeId())
	imgui.Text(fmt.Sprintf("Entity %d", ei.selected))
	for _, compType := range archetype.Types() {
		component := storage.GetComponent(ei.selected, compType)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(compType.String()) {
			for _, field := range componentFields(compType) {
				renderField(field, fieldValue(component, field))
			}
			imgui.TreePop()
		}
	}
}

func renderField(field FieldInfo, val reflect.Value) {
	name := field.Name
	if name == "" {
		name = "value"
	}
	id := "##" + name

	switch val.Kind() {
	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) {
			val.SetFloat(float64(v))
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) {
			val.SetInt(int64(v))
		}
	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			val.SetBool(v)
		}
	default:
		imgui.Text(fmt.Sprintf("%s: %+v", name, val.Interface()))
	}
}

func typeNames(types []reflect.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
