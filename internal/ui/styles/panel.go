package styles

// Banner renders text with the active theme's gradient.
func Banner(text string) string {
	t := T()
	return ApplyBoldGradient(text, t.GradientFrom, t.GradientTo)
}
