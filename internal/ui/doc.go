// Package ui contains the Bubble Tea program that drives a menu scene.
// Model focuses on message orchestration; helpers own frames, navigation,
// the inspector, filter input and rendering.
//
// Message flow:
//   - Update routes each tea.Msg through a typed handler registry, so key
//     presses, frame ticks, inspector results and backend events are each
//     handled by one focused function.
//   - A frame tick (frame.go) steps animators, resumes suspended
//     transitions through the registry scheduler and refreshes history
//     buttons. Menus are only ever touched on the Update goroutine.
//   - Navigation helpers (navigation.go) send keys to the focused panel;
//     the panel that a transition opens takes focus.
//   - The inspector (inspector.go) lists every registered menu and runs
//     toggle, solo, populate and spawn requests through ui/command.
//
// State ownership:
//   - Button lists and the inspector list live in ui/state.Level values.
//   - The scene currently on screen lives in a state.SceneStore; the
//     dispatcher swaps it when the backend watcher reports a new file.
package ui
