package dialect

// ANSI is the base dialect: the shared keyword table, the base operator set
// and no lexical extensions. It is registered automatically and is the
// default.
var ANSI = New(&Config{Name: "ansi"}).Build()

func init() {
	Register(ANSI)
	SetDefault(ANSI)
}
