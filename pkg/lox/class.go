package lox

// Class is a Lox class value: calling it constructs an Instance. Single
// inheritance is modelled as a plain pointer to the superclass's Class,
// consulted by FindMethod when a method isn't declared directly.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

// NewClass builds a class from its own (non-inherited) method table.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

// FindMethod looks up name in this class's own method table, falling
// through to the superclass chain.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity is the arity of `init` when the class declares or inherits one,
// else 0 - no constructor means `ClassName()` takes no arguments.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance and, when the class declares or inherits
// an `init` method, runs it bound to the instance before returning it.
func (c *Class) Call(interp *Interpreter, args []any) (any, error) {
	instance := NewInstance(c)

	if init := c.FindMethod("init"); init != nil {
		if _, err := init.bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}

	return instance, nil
}

func (c *Class) String() string { return c.Name }

// Instance is a runtime object: a back-reference to its class plus a
// mutable field map. Field lookups that miss fall through to the class's
// (and its superclasses') method table, bound to this instance.
type Instance struct {
	class  *Class
	fields map[string]any
}

// NewInstance creates an instance of class with an empty field map.
func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]any)}
}

// Get reads a field, then a bound method, raising a RuntimeError if
// neither exists.
func (i *Instance) Get(name Token) (any, error) {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v, nil
	}

	if method := i.class.FindMethod(name.Lexeme); method != nil {
		return method.bind(i), nil
	}

	return nil, &RuntimeError{Token: name, Msg: "undefined property '" + name.Lexeme + "'"}
}

// Set writes value into the instance's field map, creating the field if
// absent.
func (i *Instance) Set(name Token, value any) {
	i.fields[name.Lexeme] = value
}

func (i *Instance) String() string { return i.class.Name + " instance" }
