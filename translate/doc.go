// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
Package translate 把中文提示词尽力翻译成英文，失败永远不会阻断生成。

# 回退顺序

 1. 不含 CJK 字符：原样返回，Detected = "en"
 2. 配置了远程端点：POST {text, source_lang, target_lang}，成功则 Detected = "zh"
 3. 远程失败或未配置：本地词表替换，所有匹配词全部替换
 4. 词表无命中：原样返回并记录 warn 日志

远程配置在构造时通过 Config 显式传入，没有包级可变状态。
可选的 Cache（如 RedisCache）缓存远程翻译结果。
*/
package translate
