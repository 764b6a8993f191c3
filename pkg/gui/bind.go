package gui

import (
	"fmt"
	"reflect"
)

var controlType = reflect.TypeOf((*Control)(nil))

// Bind 按 `gui:"name"` 标签将文档中的控件填入视图模型结构体的 *Control 字段
//
//	type pauseMenuView struct {
//	    Menu   *gui.Control `gui:"pauseMenu"`
//	    Resume *gui.Control `gui:"resumeButton"`
//	}
//
// 缺少任意控件时返回 ErrControlNotFound
func Bind(doc *Document, viewModel any) error {
	v := reflect.ValueOf(viewModel)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("gui: Bind requires a pointer to struct, got %T", viewModel)
	}
	v = v.Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, ok := field.Tag.Lookup("gui")
		if !ok {
			continue
		}
		if field.Type != controlType {
			return fmt.Errorf("gui: field %s must be *gui.Control", field.Name)
		}
		if !field.IsExported() {
			return fmt.Errorf("gui: field %s must be exported", field.Name)
		}
		c, err := doc.Control(name)
		if err != nil {
			return fmt.Errorf("bind %s.%s: %w", t.Name(), field.Name, err)
		}
		v.Field(i).Set(reflect.ValueOf(c))
	}
	return nil
}
