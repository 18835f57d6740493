// Package pipeline 串联提示词翻译、图像生成与历史记录写入。
//
// 翻译与历史写入均为尽力而为：翻译失败回退到本地词表或原文，
// 历史写入失败只记录日志。调用方只会看到参数校验错误与上游错误。
package pipeline
