/*
Package feature describes the columns of the tabular data trees are
grown from: continuous numeric features and discrete features that can
only take a value among a finite set of classes. Discrete features are
only valid as prediction targets; input columns must be continuous.
*/
package feature

import "fmt"

/*
Feature represents a property that can be observed for every sample of
a dataset.
*/
type Feature interface {
	Name() string
	Valid(interface{}) (bool, error)
}

/*
DiscreteFeature represents a property that can only take a value among
a finite set. When used as a prediction target its values are the
classes the tree predicts, encoded as their index in the available
value slice.
*/
type DiscreteFeature struct {
	name            string
	availableValues []string
}

/*
ContinuousFeature represents a property that can take any numeric
value.
*/
type ContinuousFeature struct {
	name string
}

/*
NewDiscreteFeature takes a name string and a slice of available value
strings and returns a discrete feature with the given name and
available values.
*/
func NewDiscreteFeature(name string, availableValues []string) *DiscreteFeature {
	return &DiscreteFeature{name, availableValues}
}

/*
NewContinuousFeature takes a name string and returns a continuous
feature with the given name.
*/
func NewContinuousFeature(name string) *ContinuousFeature {
	return &ContinuousFeature{name}
}

/*
Name returns a string with the name of the feature
*/
func (df *DiscreteFeature) Name() string {
	return df.name
}

/*
Valid receives an interface value and returns a boolean and an error.
When the value parameter is included in the available values of the
feature, the method returns true and nil. Otherwise it returns false
and an error describing the reason.
*/
func (df *DiscreteFeature) Valid(value interface{}) (bool, error) {
	vs, ok := value.(string)
	if !ok {
		return false, fmt.Errorf("discrete feature %s expects string value, got %T value", df.Name(), value)
	}
	for _, av := range df.availableValues {
		if av == vs {
			return true, nil
		}
	}
	return false, fmt.Errorf("discrete feature %s got unknown value %s", df.Name(), vs)
}

/*
AvailableValues returns a string slice with the values available for
the feature
*/
func (df *DiscreteFeature) AvailableValues() []string {
	return df.availableValues
}

/*
ClassIndex takes a value string and returns its index among the
feature's available values, or an error if the value is not one of
them. The index is the numeric encoding trees are grown with.
*/
func (df *DiscreteFeature) ClassIndex(value string) (int, error) {
	for i, av := range df.availableValues {
		if av == value {
			return i, nil
		}
	}
	return 0, fmt.Errorf("discrete feature %s got unknown value %s", df.Name(), value)
}

func (df *DiscreteFeature) String() string {
	return df.name
}

/*
Name returns a string with the name of the feature
*/
func (cf *ContinuousFeature) Name() string {
	return cf.name
}

/*
Valid receives an interface value and returns a boolean and an error.
When the value parameter is a float64 it returns true and nil,
otherwise it returns false and an error describing the reason.
*/
func (cf *ContinuousFeature) Valid(value interface{}) (bool, error) {
	_, ok := value.(float64)
	if !ok {
		return false, fmt.Errorf("continuous feature %s expects float64 value, got %T value", cf.Name(), value)
	}
	return true, nil
}

func (cf *ContinuousFeature) String() string {
	return cf.name
}
