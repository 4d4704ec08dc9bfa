package typex

import "strconv"

// NullableBool is a boolean flag that remembers whether it was given at all.
type NullableBool struct {
	Value *bool
}

func (nb *NullableBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	nb.Value = &v
	return nil
}

func (nb *NullableBool) String() string {
	if nb.Value == nil {
		return "<nil>"
	}
	return strconv.FormatBool(*nb.Value)
}

func (nb *NullableBool) Val(defaultValue bool) bool {
	if nb.Value == nil {
		return defaultValue
	}
	return *nb.Value
}

func (nb *NullableBool) IsBoolFlag() bool {
	return true
}
