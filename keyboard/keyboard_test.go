package keyboard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keybot/core"
	"keybot/session"
)

func newMachine(optFns ...func(o *Options)) *Machine {
	return New(session.NewInMemoryStore(), optFns...)
}

func TestMachine_AppendsEchoInOrder(t *testing.T) {
	m := newMachine()
	m.Open("u1")

	presses := []string{"H", "E", "L", "L", "O", core.ActionSpace, "W"}
	var prompt core.Payload
	for _, p := range presses {
		var sub *Submission
		prompt, sub = m.Apply("u1", p)
		require.Nil(t, sub)
	}

	assert.Equal(t, "Nhập: HELLO W", prompt.Text)
}

func TestMachine_DeleteOnEmptyIsNoOp(t *testing.T) {
	m := newMachine()
	m.Open("u1")

	prompt, sub := m.Apply("u1", core.ActionDelete)
	require.Nil(t, sub)
	assert.Equal(t, "Nhập: ", prompt.Text)
}

func TestMachine_DeleteTrimsWholeRune(t *testing.T) {
	m := newMachine()
	m.Open("u1")
	m.Apply("u1", "n")
	m.Apply("u1", "hà") // multi-byte Vietnamese rune in the middle

	prompt, _ := m.Apply("u1", core.ActionDelete)
	assert.Equal(t, "Nhập: nh", prompt.Text)
}

func TestMachine_EnterSubmitsAndResets(t *testing.T) {
	m := newMachine()
	m.Open("u1")
	m.Apply("u1", "H")
	m.Apply("u1", "I")

	prompt, sub := m.Apply("u1", core.ActionEnter)
	require.NotNil(t, sub)
	assert.Equal(t, "HI", sub.Text)
	assert.Equal(t, "u1", sub.UserID)
	assert.Equal(t, "Nhập: ", prompt.Text)

	// Even an empty buffer submits (as the empty string).
	_, sub = m.Apply("u1", core.ActionEnter)
	require.NotNil(t, sub)
	assert.Equal(t, "", sub.Text)
}

func TestMachine_OpenIsIdempotent(t *testing.T) {
	m := newMachine()
	m.Open("u1")
	m.Apply("u1", "A")

	prompt := m.Open("u1")
	assert.Equal(t, "Nhập: ", prompt.Text)

	prompt = m.Open("u1")
	assert.Equal(t, "Nhập: ", prompt.Text)
}

func TestMachine_ApplyLazilyCreatesSession(t *testing.T) {
	m := newMachine()

	prompt, sub := m.Apply("fresh", "Z")
	require.Nil(t, sub)
	assert.Equal(t, "Nhập: Z", prompt.Text)
}

func TestMachine_UsersAreIndependent(t *testing.T) {
	m := newMachine()
	m.Open("a")
	m.Open("b")
	m.Apply("a", "X")
	m.Apply("b", "Y")

	promptA, _ := m.Apply("a", "X")
	promptB, _ := m.Apply("b", "Y")
	assert.Equal(t, "Nhập: XX", promptA.Text)
	assert.Equal(t, "Nhập: YY", promptB.Text)
}

func TestMachine_RenderLayout(t *testing.T) {
	m := newMachine()
	prompt := m.Render("")

	require.NotNil(t, prompt.Grid)
	rows := prompt.Grid.Rows
	// 26 letters in rows of 7 -> 7, 7, 7, 5, plus the control row.
	require.Len(t, rows, 5)
	assert.Len(t, rows[0].Buttons, 7)
	assert.Len(t, rows[1].Buttons, 7)
	assert.Len(t, rows[2].Buttons, 7)
	assert.Len(t, rows[3].Buttons, 5)

	assert.Equal(t, "A", rows[0].Buttons[0].Label)
	assert.Equal(t, "Z", rows[3].Buttons[4].Value)

	control := rows[4].Buttons
	require.Len(t, control, 3)
	assert.Equal(t, core.ActionSpace, control[0].Value)
	assert.Equal(t, core.ActionDelete, control[1].Value)
	assert.Equal(t, core.ActionEnter, control[2].Value)
}

func TestMachine_RenderIsDeterministic(t *testing.T) {
	m := newMachine()
	a := m.Render("abc")
	b := m.Render("abc")
	assert.Equal(t, a, b)
}

func TestMachine_BufferCap(t *testing.T) {
	m := newMachine(func(o *Options) { o.MaxBufferLen = 3 })
	m.Open("u1")
	m.Apply("u1", "A")
	m.Apply("u1", "B")
	m.Apply("u1", "C")

	prompt, _ := m.Apply("u1", "D")
	assert.Equal(t, "Nhập: ABC", prompt.Text)

	// Delete frees room again.
	m.Apply("u1", core.ActionDelete)
	prompt, _ = m.Apply("u1", "D")
	assert.True(t, strings.HasSuffix(prompt.Text, "ABD"))
}
