package repository

// Keys names the four persisted records after a common prefix
type Keys struct {
	Prefix string
}

func (k Keys) Goals() string { return k.Prefix }
func (k Keys) View() string  { return k.Prefix + "_view" }
func (k Keys) Labs() string  { return k.Prefix + "_labs" }
func (k Keys) Theme() string { return k.Prefix + "_theme" }

func (k Keys) All() []string {
	return []string{k.Goals(), k.View(), k.Labs(), k.Theme()}
}
