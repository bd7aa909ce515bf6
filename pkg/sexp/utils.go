package sexp

import (
	"fmt"
	"strconv"
)

// GetNodeName returns the leading symbol of a list, or "" if there is none
func GetNodeName(s Sexp) string {
	l, ok := s.(*List)
	if !ok || l.Len() == 0 {
		return ""
	}
	if sym, ok := l.Get(0).(Symbol); ok {
		return string(sym)
	}
	return ""
}

// FindNode returns the first child list whose name is key.
// Example: FindNode(elem, "at") finds (at 10 20).
func FindNode(s Sexp, key string) (*List, bool) {
	l, ok := s.(*List)
	if !ok {
		return nil, false
	}
	for _, item := range l.elements {
		if GetNodeName(item) == key {
			return item.(*List), true
		}
	}
	return nil, false
}

// FindAllNodes returns every child list whose name is key, in order
func FindAllNodes(s Sexp, key string) []*List {
	var results []*List
	l, ok := s.(*List)
	if !ok {
		return results
	}
	for _, item := range l.elements {
		if GetNodeName(item) == key {
			results = append(results, item.(*List))
		}
	}
	return results
}

// GetListItems returns the items of a list after its name
func GetListItems(s Sexp) []Sexp {
	l, ok := s.(*List)
	if !ok || l.Len() <= 1 {
		return nil
	}
	return l.elements[1:]
}

// GetString returns the text of the atom at index. Index 0 is the name,
// 1 the first value. Both symbols and quoted strings are accepted.
func GetString(s Sexp, index int) (string, error) {
	l, ok := s.(*List)
	if !ok {
		return "", fmt.Errorf("expected list, got leaf")
	}
	if index < 0 || index >= l.Len() {
		return "", fmt.Errorf("index %d out of bounds (length %d)", index, l.Len())
	}

	switch v := l.elements[index].(type) {
	case Symbol:
		return string(v), nil
	case String:
		return string(v), nil
	default:
		return "", fmt.Errorf("expected atom at index %d, got list", index)
	}
}

// GetFloat extracts a float64 value at the given index
func GetFloat(s Sexp, index int) (float64, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}
	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float %q: %w", str, err)
	}
	return val, nil
}

// GetInt extracts an int value at the given index
func GetInt(s Sexp, index int) (int, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("failed to parse int %q: %w", str, err)
	}
	return val, nil
}

// GetPosition reads the X and Y of a (keyword X Y) node such as (at 10 20)
// or (xy 0 5)
func GetPosition(s Sexp) (x, y float64, err error) {
	if s.IsLeaf() {
		return 0, 0, fmt.Errorf("expected position list")
	}
	if x, err = GetFloat(s, 1); err != nil {
		return 0, 0, fmt.Errorf("failed to parse X: %w", err)
	}
	if y, err = GetFloat(s, 2); err != nil {
		return 0, 0, fmt.Errorf("failed to parse Y: %w", err)
	}
	return x, y, nil
}
