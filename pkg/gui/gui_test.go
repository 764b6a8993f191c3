package gui

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDoc = `name: test
controls:
  - name: menu
    kind: rectangle
    left: 100
    top: 50
    width: 200
    height: 300
    background: "#000000"
    alpha: 0.5
    children:
      - name: buttons
        kind: stack
        spacing: 10
        children:
          - name: resumeButton
            kind: button
            text: Resume
            height: 40
          - name: hiddenButton
            kind: button
            text: Hidden
            height: 40
            hidden: true
          - name: exitButton
            kind: button
            text: Exit
            height: 40
  - name: label
    kind: text
    text: hello
`

func mustParse(t *testing.T) *Document {
	t.Helper()
	doc, err := Parse([]byte(testDoc))
	require.NoError(t, err)
	doc.Layout(1280, 720)
	return doc
}

func TestParse_IndexesControls(t *testing.T) {
	doc := mustParse(t)
	assert.Equal(t, "test", doc.Name)

	resume, err := doc.Control("resumeButton")
	require.NoError(t, err)
	assert.Equal(t, KindButton, resume.Kind)
	assert.Equal(t, "buttons", resume.Parent().Name)

	_, err = doc.Control("nope")
	assert.ErrorIs(t, err, ErrControlNotFound)
}

func TestParse_DuplicateName(t *testing.T) {
	_, err := Parse([]byte("name: d\ncontrols:\n  - name: a\n  - name: a\n"))
	assert.Error(t, err)
}

func TestLayout_StackSkipsHiddenChildren(t *testing.T) {
	doc := mustParse(t)
	resume, _ := doc.Control("resumeButton")
	exit, _ := doc.Control("exitButton")

	assert.Equal(t, Rect{X: 100, Y: 50, W: 200, H: 40}, resume.Bounds())
	assert.Equal(t, Rect{X: 100, Y: 100, W: 200, H: 40}, exit.Bounds())

	hidden, _ := doc.Control("hiddenButton")
	hidden.SetVisible(true)
	doc.Layout(1280, 720)
	assert.Equal(t, 150.0, exit.Bounds().Y)
}

func TestHandleClick_DispatchesToVisibleEnabledButton(t *testing.T) {
	doc := mustParse(t)
	resume, _ := doc.Control("resumeButton")
	menu, _ := doc.Control("menu")

	clicks := 0
	resume.OnClick().Add(func(*Control) { clicks++ })

	assert.True(t, doc.HandleClick(150, 60))
	assert.Equal(t, 1, clicks)

	assert.False(t, doc.HandleClick(5, 5), "no button at this point")

	menu.SetEnabled(false)
	assert.False(t, doc.HandleClick(150, 60), "disabled ancestor blocks clicks")
	menu.SetEnabled(true)

	menu.SetVisible(false)
	assert.False(t, doc.HandleClick(150, 60), "hidden ancestor blocks clicks")
	assert.Equal(t, 1, clicks)
	assert.False(t, resume.EffectivelyVisible())
}

func TestEffectiveAlpha(t *testing.T) {
	doc := mustParse(t)
	resume, _ := doc.Control("resumeButton")
	assert.InDelta(t, 0.5, resume.EffectiveAlpha(), 1e-9)

	resume.SetAlpha(0.5)
	assert.InDelta(t, 0.25, resume.EffectiveAlpha(), 1e-9)
}

type menuView struct {
	Menu   *Control `gui:"menu"`
	Resume *Control `gui:"resumeButton"`
	Other  string
}

func TestBind(t *testing.T) {
	doc := mustParse(t)

	var vm menuView
	require.NoError(t, Bind(doc, &vm))
	assert.Equal(t, "menu", vm.Menu.Name)
	assert.Equal(t, "resumeButton", vm.Resume.Name)
}

func TestBind_MissingControl(t *testing.T) {
	doc := mustParse(t)

	var vm struct {
		Missing *Control `gui:"doesNotExist"`
	}
	err := Bind(doc, &vm)
	require.ErrorIs(t, err, ErrControlNotFound)
	assert.Contains(t, err.Error(), "doesNotExist")
}

func TestBind_RejectsNonPointer(t *testing.T) {
	doc := mustParse(t)
	assert.Error(t, Bind(doc, menuView{}))
}

func TestParseColor(t *testing.T) {
	c, ok := ParseColor("#ff0000", 0.5)
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 255, A: 127}, c)

	_, ok = ParseColor("", 1)
	assert.False(t, ok)
	_, ok = ParseColor("not-a-color", 1)
	assert.False(t, ok)
}
