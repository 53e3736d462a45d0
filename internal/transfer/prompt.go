package transfer

// Prompter decides whether an existing target may be replaced
type Prompter interface {
	ConfirmOverwrite(target string) (bool, error)
}

// PrompterFunc adapts a function to Prompter
type PrompterFunc func(target string) (bool, error)

func (f PrompterFunc) ConfirmOverwrite(target string) (bool, error) {
	return f(target)
}
