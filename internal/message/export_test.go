package message

// SetHandlerForTest 直接设置处理函数，不启动消费者组
func (c *StatusConsumer) SetHandlerForTest(handler StatusHandler) {
	c.handler = handler
}
