// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package socsim

// GetInt64 returns the value of the bus pins as an int64. Pin 0 is the
// least significant bit.
//
func (c *Circuit) GetInt64(pins []int) int64 {
	var out int64
	for bit := range pins {
		if c.Get(pins[bit]) {
			out |= 1 << uint(bit)
		}
	}
	return out
}

// SetInt64 sets the bus pins to the given int64 value. Pin 0 is the
// least significant bit.
//
func (c *Circuit) SetInt64(pins []int, v int64) {
	for bit := range pins {
		c.Set(pins[bit], v&(1<<uint(bit)) != 0)
	}
}
