// ote-viewer displays an electron scheme and edits the selected element
package main

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/OpenTraceElectron/internal/config"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/electron"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/image"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/render"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/scheme"
)

// clickSlop is how far, in pixels, a press may move and still count as a
// click rather than a pan
const clickSlop = 4

// gridStep is the world spacing of the background dots
const gridStep = 10.0

func main() {
	go func() {
		w := new(app.Window)
		w.Option(app.Title("Electron Scheme Viewer"))
		w.Option(app.Size(unit.Dp(1200), unit.Dp(800)))

		if err := run(w); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

type viewerApp struct {
	window   *app.Window
	gvTheme  *theme.Theme
	explorer *explorer.Explorer

	cfg     *config.Config
	cfgPath string

	doc        *electron.Electron
	camera     *render.Camera
	colorTheme render.Theme
	colors     *render.Colors
	opts       render.Options
	filepath   string
	status     string

	// files picked in the explorer goroutine, loaded on the event loop
	picked chan string

	openBtn, saveBtn, fitBtn, themeBtn widget.Clickable
	rotLBtn, rotRBtn, refXBtn, refYBtn widget.Clickable
	wireBtn                            widget.Clickable
	actionsBtn                         widget.Clickable
	actions                            *menu.DropdownMenu

	openIcon, saveIcon, rotLIcon, rotRIcon, flipIcon, moreIcon *widget.Icon

	// wire mode: clicks add vertices instead of selecting
	wireMode bool
	wires    electron.WireBuilder

	// pointer state
	pressPos   f32.Point
	lastPos    f32.Point
	isDragging bool
	moved      bool
	moving     bool // the press grabbed the selection, so drags move it
	drag       electron.Drag
}

func run(w *app.Window) error {
	v := &viewerApp{
		window:   w,
		gvTheme:  theme.NewTheme("", nil, true),
		explorer: explorer.NewExplorer(w),
		doc:      electron.New(scheme.New()),
		camera:   render.NewCamera(1200, 800),
		opts:     render.DefaultOptions(),
		picked:   make(chan string, 1),
	}
	v.loadConfig()
	v.loadIcons()
	v.actions = v.buildActionsMenu()

	if len(os.Args) > 1 {
		v.loadScheme(os.Args[1])
	}

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			select {
			case path := <-v.picked:
				v.loadScheme(path)
			default:
			}

			v.handleInput(gtx)
			v.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (v *viewerApp) loadConfig() {
	path, err := config.DefaultPath()
	if err == nil {
		v.cfgPath = path
		v.cfg, err = config.Load(path)
	}
	if err != nil {
		log.Printf("ote-viewer: config: %v (using defaults)", err)
		v.cfg = config.Default()
	}
	v.colorTheme = render.ParseTheme(v.cfg.Theme)
	v.colors = render.GetColors(v.colorTheme)
}

func (v *viewerApp) loadIcons() {
	for _, ic := range []struct {
		dst  **widget.Icon
		data []byte
	}{
		{&v.openIcon, icons.FileFolderOpen},
		{&v.saveIcon, icons.ContentSave},
		{&v.rotLIcon, icons.ImageRotateLeft},
		{&v.rotRIcon, icons.ImageRotateRight},
		{&v.flipIcon, icons.ImageFlip},
		{&v.moreIcon, icons.NavigationMoreVert},
	} {
		if icon, err := widget.NewIcon(ic.data); err == nil {
			*ic.dst = icon
		}
	}
}

func (v *viewerApp) buildActionsMenu() *menu.DropdownMenu {
	items := []struct {
		label string
		do    func()
	}{
		{"Rotate 45°", func() { v.doc.RotateCurrent(45) }},
		{"Rotate 180°", func() { v.doc.RotateCurrent(180) }},
		{"Reflect X", func() { v.doc.ReflectCurrent(image.AxisX) }},
		{"Reflect Y", func() { v.doc.ReflectCurrent(image.AxisY) }},
		{"Duplicate", v.duplicateCurrent},
		{"Delete", v.deleteCurrent},
		{"Clear selection", v.doc.ClearCurrent},
	}

	opts := make([]menu.MenuOption, 0, len(items))
	for _, it := range items {
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				it.do()
				v.window.Invalidate()
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx,
					material.Body1(th.Theme, it.label).Layout)
			},
		})
	}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{opts})
	drop.MaxWidth = unit.Dp(200)
	return drop
}

func (v *viewerApp) handleInput(gtx layout.Context) {
	if v.openBtn.Clicked(gtx) {
		v.openFilePicker()
	}
	if v.saveBtn.Clicked(gtx) {
		v.save()
	}
	if v.fitBtn.Clicked(gtx) {
		v.fitToView()
	}
	if v.themeBtn.Clicked(gtx) {
		v.toggleTheme()
	}
	if v.rotLBtn.Clicked(gtx) {
		v.doc.RotateCurrent(v.cfg.RotationStep)
	}
	if v.rotRBtn.Clicked(gtx) {
		v.doc.RotateCurrent(-v.cfg.RotationStep)
	}
	if v.refXBtn.Clicked(gtx) {
		v.doc.ReflectCurrent(image.AxisX)
	}
	if v.refYBtn.Clicked(gtx) {
		v.doc.ReflectCurrent(image.AxisY)
	}
	if v.wireBtn.Clicked(gtx) {
		v.toggleWireMode()
	}
	if v.actionsBtn.Clicked(gtx) {
		v.actions.ToggleVisibility(gtx)
	}

	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "O", Required: key.ModShortcut},
			key.Filter{Name: "S", Required: key.ModShortcut},
			key.Filter{Name: "T", Required: key.ModShortcut},
			key.Filter{Name: "D", Required: key.ModShortcut},
			key.Filter{Name: "W"},
			key.Filter{Name: key.NameReturn},
			key.Filter{Name: key.NameEnter},
			key.Filter{Name: "F"},
			key.Filter{Name: "R"},
			key.Filter{Name: "R", Required: key.ModShift},
			key.Filter{Name: "X"},
			key.Filter{Name: "Y"},
			key.Filter{Name: key.NameDeleteForward},
			key.Filter{Name: key.NameDeleteBackward},
			key.Filter{Name: key.NameEscape},
		)
		if !ok {
			break
		}
		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}
		v.handleKey(ke)
	}
}

func (v *viewerApp) handleKey(ke key.Event) {
	switch {
	case ke.Modifiers.Contain(key.ModShortcut):
		switch ke.Name {
		case "O":
			v.openFilePicker()
		case "S":
			v.save()
		case "T":
			v.toggleTheme()
		case "D":
			v.duplicateCurrent()
		}
	case v.wireMode:
		v.handleWireKey(ke)
	case ke.Name == "W":
		v.toggleWireMode()
	case ke.Name == "R" && ke.Modifiers.Contain(key.ModShift):
		v.doc.RotateCurrent(-v.cfg.RotationStep)
	case ke.Name == "R":
		v.doc.RotateCurrent(v.cfg.RotationStep)
	case ke.Name == "X":
		v.doc.ReflectCurrent(image.AxisX)
	case ke.Name == "Y":
		v.doc.ReflectCurrent(image.AxisY)
	case ke.Name == "F":
		v.fitToView()
	case ke.Name == key.NameDeleteForward || ke.Name == key.NameDeleteBackward:
		v.deleteCurrent()
	case ke.Name == key.NameEscape:
		v.doc.ClearCurrent()
	}
	v.window.Invalidate()
}

// handleWireKey handles keys while wire mode is on: Enter completes the
// wire, Backspace drops its last vertex and Esc abandons it
func (v *viewerApp) handleWireKey(ke key.Event) {
	switch ke.Name {
	case key.NameReturn, key.NameEnter:
		v.finishWire()
	case key.NameDeleteBackward:
		v.wires.Back()
	case key.NameEscape:
		if v.wires.Active() {
			v.wires.Cancel()
		} else {
			v.toggleWireMode()
		}
	case "W":
		v.toggleWireMode()
	case "F":
		v.fitToView()
	}
}

func (v *viewerApp) toggleWireMode() {
	v.wireMode = !v.wireMode
	if !v.wireMode {
		v.wires.Cancel()
	}
	v.status = ""
}

func (v *viewerApp) finishWire() {
	ok, err := v.wires.Finish(v.doc)
	switch {
	case err != nil:
		log.Printf("ote-viewer: wire: %v", err)
		v.status = "Wire failed: " + err.Error()
	case !ok:
		v.status = "A wire needs at least one segment"
	default:
		if el, ok := v.doc.Current(); ok {
			log.Printf("ote-viewer: added %s", el)
		}
		v.status = ""
	}
}

func (v *viewerApp) duplicateCurrent() {
	if _, err := v.doc.DuplicateCurrent(image.Pt(gridStep, -gridStep)); err != nil {
		v.status = err.Error()
	}
}

// pickTolerance is clickSlop converted to world units
func (v *viewerApp) pickTolerance() float64 {
	return clickSlop / v.camera.Zoom
}

func (v *viewerApp) toWorld(pos f32.Point) image.Point {
	return v.camera.ScreenToWorld(float64(pos.X), float64(pos.Y))
}

// handleCanvas processes pointer input over the drawing area. Dragging the
// selected element moves it and any other drag pans. Scroll zooms. A click
// selects the element under the cursor, or adds a vertex in wire mode.
func (v *viewerApp) handleCanvas(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  v,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Move | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}

		switch pe.Kind {
		case pointer.Press:
			if pe.Buttons == pointer.ButtonPrimary {
				v.isDragging = true
				v.moved = false
				v.pressPos = pe.Position
				v.lastPos = pe.Position
				v.moving = false
				if !v.wireMode {
					v.drag, v.moving = v.doc.BeginDrag(v.toWorld(pe.Position), v.pickTolerance())
				}
			}

		case pointer.Move:
			if v.wireMode {
				v.wires.Hover(v.toWorld(pe.Position))
			}

		case pointer.Drag:
			if !v.isDragging {
				continue
			}
			d := pe.Position.Sub(v.pressPos)
			if math.Hypot(float64(d.X), float64(d.Y)) > clickSlop {
				v.moved = true
			}
			switch {
			case v.moved && v.moving:
				if err := v.doc.DragTo(v.drag, v.toWorld(pe.Position)); err != nil {
					log.Printf("ote-viewer: move: %v", err)
					v.moving = false
				}
			case v.moved:
				v.camera.Pan(float64(pe.Position.X-v.lastPos.X), float64(pe.Position.Y-v.lastPos.Y))
			}
			v.lastPos = pe.Position

		case pointer.Release:
			if v.isDragging && !v.moved {
				if v.wireMode {
					v.wires.Click(v.toWorld(pe.Position), v.doc.NextWireName())
				} else {
					v.selectAt(pe.Position)
				}
			}
			v.isDragging = false
			v.moving = false

		case pointer.Scroll:
			factor := 1.0 - float64(pe.Scroll.Y)*0.01
			v.camera.ZoomAt(float64(pe.Position.X), float64(pe.Position.Y), factor)
		}
		v.window.Invalidate()
	}
}

func (v *viewerApp) selectAt(pos f32.Point) {
	id, ok := electron.Pick(v.doc.Tree(), v.toWorld(pos), v.pickTolerance())
	if !ok {
		v.doc.ClearCurrent()
		return
	}
	v.doc.SetCurrent(id)
	if el, ok := v.doc.Current(); ok {
		log.Printf("ote-viewer: selected %s", el)
	}
}

func (v *viewerApp) deleteCurrent() {
	id := v.doc.CurrentID()
	if id.IsZero() {
		return
	}
	if err := v.doc.Remove(id); err != nil {
		log.Printf("ote-viewer: delete: %v", err)
	}
}

func (v *viewerApp) openFilePicker() {
	go func() {
		file, err := v.explorer.ChooseFile(strings.TrimPrefix(scheme.Extension, "."))
		if err != nil {
			if !errors.Is(err, explorer.ErrUserDecline) {
				log.Printf("ote-viewer: file picker: %v", err)
			}
			return
		}
		defer file.Close()

		if f, ok := file.(*os.File); ok {
			v.picked <- f.Name()
			v.window.Invalidate()
		}
	}()
}

func (v *viewerApp) loadScheme(path string) {
	if err := v.doc.LoadFromFile(path); err != nil {
		log.Printf("ote-viewer: %v", err)
		v.status = "Load failed: " + err.Error()
		return
	}
	v.filepath = path
	v.status = ""
	v.window.Option(app.Title("Electron Scheme Viewer - " + path))
	v.fitToView()
	log.Printf("ote-viewer: loaded %s (%d elements)", path, v.doc.Tree().Len())
}

func (v *viewerApp) save() {
	if v.filepath == "" {
		v.status = "Nothing to save"
		return
	}
	if err := v.doc.SaveToFile(v.filepath); err != nil {
		log.Printf("ote-viewer: save: %v", err)
		v.status = "Save failed: " + err.Error()
		return
	}
	v.status = "Saved " + v.filepath
}

func (v *viewerApp) toggleTheme() {
	if v.colorTheme == render.ThemeLight {
		v.colorTheme = render.ThemeDark
	} else {
		v.colorTheme = render.ThemeLight
	}
	v.colors = render.GetColors(v.colorTheme)

	v.cfg.Theme = v.colorTheme.String()
	if v.cfgPath != "" {
		if err := config.Save(v.cfgPath, v.cfg); err != nil {
			log.Printf("ote-viewer: save config: %v", err)
		}
	}
}

func (v *viewerApp) fitToView() {
	bb := electron.WorldBounds(v.doc.Tree())
	if bb.IsEmpty() {
		return
	}
	v.camera.Fit(bb)
}

func (v *viewerApp) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, v.colors.Background)

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(v.layoutToolbar),
		layout.Flexed(1, v.layoutCanvas),
	)
}

func (v *viewerApp) iconButton(gtx layout.Context, btn *widget.Clickable, icon *widget.Icon, label string) layout.Dimensions {
	th := v.gvTheme.Theme
	if icon == nil {
		return material.Button(th, btn, label).Layout(gtx)
	}
	b := material.IconButton(th, btn, icon, label)
	b.Size = unit.Dp(20)
	b.Inset = layout.UniformInset(unit.Dp(6))
	return b.Layout(gtx)
}

func (v *viewerApp) layoutToolbar(gtx layout.Context) layout.Dimensions {
	th := v.gvTheme.Theme
	gap := layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout)

	return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return v.iconButton(gtx, &v.openBtn, v.openIcon, "Open")
					}),
					gap,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return v.iconButton(gtx, &v.saveBtn, v.saveIcon, "Save")
					}),
					gap,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return v.iconButton(gtx, &v.rotLBtn, v.rotLIcon, "RotL")
					}),
					gap,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return v.iconButton(gtx, &v.rotRBtn, v.rotRIcon, "RotR")
					}),
					gap,
					layout.Rigid(material.Button(th, &v.refXBtn, "RefX").Layout),
					gap,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return v.iconButton(gtx, &v.refYBtn, v.flipIcon, "RefY")
					}),
					gap,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						label := "Wire (W)"
						if v.wireMode {
							label = "Wire: on"
						}
						return material.Button(th, &v.wireBtn, label).Layout(gtx)
					}),
					gap,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						dims := v.iconButton(gtx, &v.actionsBtn, v.moreIcon, "Actions")
						v.actions.Layout(gtx, v.gvTheme)
						return dims
					}),
					gap,
					layout.Rigid(material.Button(th, &v.fitBtn, "Fit (F)").Layout),
					gap,
					layout.Rigid(material.Button(th, &v.themeBtn, "Theme: "+v.colorTheme.String()).Layout),
				)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return material.Body1(th, v.statusText()).Layout(gtx)
			}),
		)
	})
}

func (v *viewerApp) statusText() string {
	if v.status != "" {
		return v.status
	}
	if v.wireMode {
		return "Wire mode: click to add vertices | Enter completes | Backspace undoes | Esc cancels"
	}
	sel := "none"
	if el, ok := v.doc.Current(); ok {
		sel = fmt.Sprintf("%s %q", el.Kind, el.Name)
		if pos, ok := v.doc.WorldPos(v.doc.CurrentID()); ok {
			sel += " at " + pos.String()
		}
	}
	return fmt.Sprintf("Elements: %d | Selected: %s | Zoom: %.1f", v.doc.Tree().Len(), sel, v.camera.Zoom)
}

func (v *viewerApp) layoutCanvas(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	v.camera.UpdateScreenSize(size.X, size.Y)
	v.handleCanvas(gtx)

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, v)

	if v.doc.Tree().Len() == 0 && !v.wireMode {
		return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(material.H5(v.gvTheme.Theme, "Electron Scheme Viewer").Layout),
				layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
				layout.Rigid(material.Body2(v.gvTheme.Theme, "Ctrl+O to open a scheme, or launch with: ote-viewer <file.esch>").Layout),
				layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
				layout.Rigid(material.Body2(v.gvTheme.Theme, "Click to select | Drag to pan or move | Scroll to zoom | R / Shift+R rotate | X / Y reflect | W wire | Del delete").Layout),
			)
		})
	}

	render.RenderGrid(gtx, v.camera, gridStep, v.colors)
	render.RenderTree(gtx, v.camera, v.doc.Tree(), v.doc.CurrentID(), v.colors, v.opts)
	if v.wires.Active() {
		render.RenderWire(gtx, v.camera, v.wires.Wire(), v.colors.Current, v.opts)
	}
	return layout.Dimensions{Size: size}
}
